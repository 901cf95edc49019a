package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	"telegram-cargo-bot/internal/session"
)

// Start runs the once-a-minute sweep that evicts abandoned conversations,
// so a stale "waiting for address" state cannot swallow an unrelated
// message days later.
func Start(sessions *session.Manager, log *logrus.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if n := sessions.Sweep(time.Now()); n > 0 {
				log.WithField("expired", n).Info("swept stale sessions")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
