package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ranking-workers/internal/common/config"
	"ranking-workers/internal/common/metrics"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), true},
		{"wrapped deadline", fmt.Errorf("topology: %w", status.Error(codes.DeadlineExceeded, "timeout")), true},
		{"permission denied", status.Error(codes.PermissionDenied, "no"), false},
		{"context deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), true},
		{"plain error", stderrors.New("bad address"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 2500})
	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, "2.5s", cfg.ConnectionTimeout.String())

	cfg = ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500"})
	assert.Equal(t, "10s", cfg.ConnectionTimeout.String())
}

func TestJobRun(t *testing.T) {
	const taskType = "test-job-run"
	ctx := context.Background()

	run := BeginJob(taskType, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	run.Completed(ctx)

	BeginJob(taskType, nil).Failed(ctx, "JOB_NOT_FOUND")

	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "JOB_NOT_FOUND")))
}
