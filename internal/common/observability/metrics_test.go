package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// New registers its exporter with the default Prometheus registry, so the
// package builds one instance only.
func TestObservability(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs, err := New("ranking-test", recorder)
	require.NoError(t, err)

	ctx := context.Background()
	_, span := obs.Tracer().Start(ctx, "engine.ScoreApplication")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "engine.ScoreApplication", ended[0].Name())

	obs.RecordJob(ctx, "score-application", "completed", 15*time.Millisecond)

	assert.NoError(t, obs.Shutdown(ctx))
}

func TestNilObservability(t *testing.T) {
	var obs *Observability

	assert.NotNil(t, obs.Tracer())
	obs.RecordJob(context.Background(), "score-application", "failed", time.Second)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
