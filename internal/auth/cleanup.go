package auth

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// StartSessionCleanup schedules ScanAndClean with a cron spec (e.g. "@every 1h").
// The returned cron is already started; stop it on shutdown.
func StartSessionCleanup(ctx context.Context, schedule string, service *Service, onCleaned func(n int)) (*cron.Cron, error) {
	if schedule == "" {
		schedule = "@every 1h"
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed := service.ScanAndClean(ctx)
		if onCleaned != nil {
			onCleaned(removed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session cleanup [%s]: %w", schedule, err)
	}

	c.Start()
	log.Infof("session cleanup scheduled: %s", schedule)
	return c, nil
}
