package api

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/modscope/modscope/pkg/gradle"
)

// StartBackground launches the configured rescan triggers: a cron schedule
// and a descriptor watcher. Both stop when ctx is cancelled.
func (s *Server) StartBackground(ctx context.Context) error {
	if s.opts.RescanCron != "" {
		c := cron.New()
		_, err := c.AddFunc(s.opts.RescanCron, func() {
			if err := s.Rescan(context.Background(), "cron"); err != nil {
				s.logger.WithError(err).Error("scheduled rescan failed")
			}
		})
		if err != nil {
			return err
		}
		c.Start()
		go func() {
			<-ctx.Done()
			c.Stop()
		}()
		s.logger.WithField("schedule", s.opts.RescanCron).Info("scheduled rescans enabled")
	}

	if s.opts.WatchEnabled {
		watcher, err := gradle.NewWatcher(s.opts.ProjectRoot, s.opts.Scan, s.opts.WatchDebounce, s.logger)
		if err != nil {
			return err
		}

		changed := make(chan struct{}, 1)
		go watcher.Run(ctx, changed)
		go func() {
			defer watcher.Close()
			for {
				select {
				case <-ctx.Done():
					return
				case <-changed:
					if err := s.Rescan(context.Background(), "watch"); err != nil {
						s.logger.WithError(err).Error("watch-triggered rescan failed")
					}
				}
			}
		}()
		s.logger.Info("descriptor watching enabled")
	}

	return nil
}
