package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker struct {
	name string
	err  error
}

func (c staticChecker) Name() string { return c.name }
func (c staticChecker) Check(context.Context) error { return c.err }

func TestReadyAllHealthy(t *testing.T) {
	svc := NewService(staticChecker{name: "postgres"}, staticChecker{name: "redis"})

	report, err := svc.Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{"postgres": "ok", "redis": "ok"}, report)
}

func TestReadyReportsFailure(t *testing.T) {
	down := errors.New("connection refused")
	svc := NewService(staticChecker{name: "postgres"}, staticChecker{name: "redis", err: down})

	report, err := svc.Ready(context.Background())
	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "redis")
	assert.Equal(t, "ok", report["postgres"])
	assert.Equal(t, "connection refused", report["redis"])
}
