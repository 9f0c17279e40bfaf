package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerCustomRegistersJob(t *testing.T) {
	s := NewScheduler(zap.NewNop().Sugar(), "UTC")
	s.Custom("storage-reachability-probe", "*/10 * * * *", func() {})

	jobs := s.GetJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "storage-reachability-probe", jobs[0].Name)
	assert.Equal(t, "*/10 * * * *", jobs[0].Schedule)
}

func TestSchedulerRunJobByName(t *testing.T) {
	s := NewScheduler(zap.NewNop().Sugar(), "UTC")

	ran := make(chan struct{})
	s.Custom("storage-reachability-probe", "*/10 * * * *", func() { close(ran) })

	require.NoError(t, s.RunJobByName("storage-reachability-probe"))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job task did not run")
	}

	assert.Error(t, s.RunJobByName("no-such-job"))
}
