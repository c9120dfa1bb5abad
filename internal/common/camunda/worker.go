package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"ranking-workers/internal/common/config"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/common/metrics"
	"ranking-workers/internal/common/observability"
)

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in configuration.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// JobRun tracks a single job from activation to completion or failure.
type JobRun struct {
	taskType string
	obs      *observability.Observability
	start    time.Time
}

// BeginJob marks a job active. Exactly one of Completed or Failed must follow.
func BeginJob(taskType string, obs *observability.Observability) *JobRun {
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobRun{taskType: taskType, obs: obs, start: time.Now()}
}

func (r *JobRun) Completed(ctx context.Context) {
	elapsed := r.finish()
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	r.obs.RecordJob(ctx, r.taskType, "completed", elapsed)
}

func (r *JobRun) Failed(ctx context.Context, errorCode string) {
	elapsed := r.finish()
	metrics.WorkerJobsFailed.WithLabelValues(r.taskType, errorCode).Inc()
	r.obs.RecordJob(ctx, r.taskType, "failed", elapsed)
}

func (r *JobRun) finish() time.Duration {
	elapsed := time.Since(r.start)
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	return elapsed
}

// CompleteJob sends the job's output variables back to the process.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		return err
	}
	_, err = cmd.Send(ctx)
	return err
}
