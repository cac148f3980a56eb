// Package autopublisher sequences generation and publication into complete
// pipeline runs and drives the three run modes: once, scheduled, loop.
package autopublisher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/generator"
	"github.com/lookizm/autopress/imagefinder"
	"github.com/lookizm/autopress/tracker"
	Logger "github.com/lookizm/autopress/utils/log"
	"github.com/lookizm/autopress/wordpress"
)

// scheduled mode polls the wall clock at this interval; the run fires on the
// first poll at or after POST_TIME.
const schedulePollInterval = 60 * time.Second

// AutoPublisher owns one instance of every pipeline stage and runs them in
// order. A single AutoPublisher must not be driven concurrently; the tracker
// file has no locking.
type AutoPublisher struct {
	cfg       *app_config.Config
	tracker   *tracker.PostTracker
	generator *generator.BlogPostGenerator
	wordpress *wordpress.Client
}

// New wires the full pipeline from config. Construction probes both remote
// backends, so a dead generation backend or bad credentials fail here rather
// than mid-run.
func New(cfg *app_config.Config) (*AutoPublisher, error) {
	postTracker := tracker.New(cfg.TrackerFile)

	gen, err := generator.New(cfg, postTracker)
	if err != nil {
		return nil, err
	}

	finder := imagefinder.New(cfg.PexelsAPIKey)

	client, err := wordpress.New(cfg, postTracker, finder)
	if err != nil {
		return nil, err
	}

	return &AutoPublisher{
		cfg:       cfg,
		tracker:   postTracker,
		generator: gen,
		wordpress: client,
	}, nil
}

// WordPress exposes the publishing client for administrative tooling.
func (a *AutoPublisher) WordPress() *wordpress.Client {
	return a.wordpress
}

// Tracker exposes the local post collection for administrative tooling.
func (a *AutoPublisher) Tracker() *tracker.PostTracker {
	return a.tracker
}

// GenerateAndPublish runs one full pipeline pass: draft a post on the given
// topic (or a suggested one when empty) and publish it with its thumbnail.
func (a *AutoPublisher) GenerateAndPublish(topic string) error {
	runLog := Logger.Log.WithField("run_id", uuid.New().String())
	runLog.Infoln("starting pipeline run, topic:", topic)

	draft, err := a.generator.GenerateFullPost(topic)
	if err != nil {
		runLog.Errorln("generation failed:", err)
		return err
	}
	runLog.Infof("generated draft %q (%d tags, category %s)",
		draft.Title, len(draft.Tags), draft.Category)

	result, err := a.wordpress.PublishPost(draft)
	if err != nil {
		runLog.Errorln("publication failed:", err)
		return err
	}

	runLog.Infof("published post %d (%s): %s", result.PostID, result.Status, result.URL)
	return nil
}

// RunOnce performs a single pipeline run.
func (a *AutoPublisher) RunOnce(topic string) error {
	return a.GenerateAndPublish(topic)
}

// RunScheduled publishes once per day when the wall clock reaches POST_TIME,
// until the context is cancelled. A failed run is logged and retried at the
// next day's trigger.
func (a *AutoPublisher) RunScheduled(ctx context.Context) error {
	Logger.Log.Infof("scheduled mode: %d post(s) per day at %s", a.cfg.PostsPerDay, a.cfg.PostTime)

	ticker := time.NewTicker(schedulePollInterval)
	defer ticker.Stop()

	var lastRunDay string
	for {
		now := time.Now()
		if shouldTrigger(now, a.cfg.PostTime, lastRunDay) {
			lastRunDay = now.Format("2006-01-02")
			if err := a.GenerateAndPublish(""); err != nil {
				Logger.Log.Errorln("scheduled run failed:", err)
			}
		}

		select {
		case <-ctx.Done():
			Logger.Log.Infoln("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// shouldTrigger reports whether a scheduled run is due: today's trigger time
// has passed and no run has happened today. Comparing against the passed
// trigger instead of the exact minute means a poll landing astride the
// POST_TIME minute cannot skip the day's post.
func shouldTrigger(now time.Time, postTime, lastRunDay string) bool {
	target, err := time.Parse("15:04", postTime)
	if err != nil {
		return false
	}
	trigger := time.Date(now.Year(), now.Month(), now.Day(),
		target.Hour(), target.Minute(), 0, 0, now.Location())
	return !now.Before(trigger) && now.Format("2006-01-02") != lastRunDay
}

// RunLoop publishes back to back with no delay between iterations, until the
// context is cancelled. Cancellation is checked between iterations only; the
// run in flight always completes.
func (a *AutoPublisher) RunLoop(ctx context.Context) error {
	iteration := 0
	for {
		select {
		case <-ctx.Done():
			Logger.Log.Infof("loop stopped after %d iteration(s)", iteration)
			return ctx.Err()
		default:
		}

		iteration++
		Logger.Log.Infoln("loop iteration:", iteration)
		if err := a.GenerateAndPublish(""); err != nil {
			Logger.Log.Errorln("loop iteration failed:", err)
		}
	}
}
