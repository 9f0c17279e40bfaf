package cron

import (
	"context"
	"time"

	"go.uber.org/zap"

	"godsendjoseph.dev/media-api/internal/notification"
	"godsendjoseph.dev/media-api/internal/storage"
)

// JobManager holds the scheduled jobs and their dependencies.
type JobManager struct {
	logger   *zap.SugaredLogger
	client   storage.Client
	notifier *notification.SlackNotifier
}

func NewJobManager(logger *zap.SugaredLogger, client storage.Client, notifier *notification.SlackNotifier) *JobManager {
	return &JobManager{
		logger:   logger,
		client:   client,
		notifier: notifier,
	}
}

// ProbeStorage checks that the media store answers at all by heading a
// sentinel key. The sentinel is not expected to exist; only a transport-level
// failure counts as the store being unreachable.
func (j *JobManager) ProbeStorage(sentinelKey string, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err := j.client.Exists(ctx, sentinelKey)
		if err != nil {
			j.logger.Errorw("storage reachability probe failed", "sentinel", sentinelKey, "error", err)
			if notifyErr := j.notifier.NotifyWarning(
				"Media store unreachable",
				err.Error(),
				map[string]string{"Sentinel": sentinelKey},
			); notifyErr != nil {
				j.logger.Errorw("failed to send probe notification", "error", notifyErr)
			}
			return
		}

		j.logger.Infow("storage reachability probe ok", "sentinel", sentinelKey)
	}
}
