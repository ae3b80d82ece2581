package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saulo-duarte/quizsolver/internal/attempt"
	"github.com/saulo-duarte/quizsolver/internal/canvas"
	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/saulo-duarte/quizsolver/internal/discovery"
	"github.com/saulo-duarte/quizsolver/internal/status"
	util "github.com/saulo-duarte/quizsolver/internal/utils"
)

type Delays struct {
	SubmissionMin time.Duration
	SubmissionMax time.Duration
	RetakeMin     time.Duration
	RetakeMax     time.Duration
}

var DefaultDelays = Delays{
	SubmissionMin: 60 * time.Second,
	SubmissionMax: 180 * time.Second,
	RetakeMin:     5 * time.Second,
	RetakeMax:     15 * time.Second,
}

type Runner struct {
	ids      canvas.QuizIdentifiers
	repo     discovery.Repository
	attempts attempt.Service
	tracker  *status.Tracker
	rand     util.Source
	sleep    util.Sleeper
	delays   Delays
}

// New builds a run loop. tracker may be nil.
func New(
	ids canvas.QuizIdentifiers,
	repo discovery.Repository,
	attempts attempt.Service,
	tracker *status.Tracker,
	src util.Source,
	sleep util.Sleeper,
	delays Delays,
) *Runner {
	if sleep == nil {
		sleep = util.Sleep
	}
	return &Runner{
		ids:      ids,
		repo:     repo,
		attempts: attempts,
		tracker:  tracker,
		rand:     src,
		sleep:    sleep,
		delays:   delays,
	}
}

// Load returns the persisted knowledge base for the quiz, or a fresh one when
// none has been saved yet.
func (r *Runner) Load() (*discovery.KnowledgeBase, error) {
	kb, err := r.repo.Load(r.ids.QuizID)
	if errors.Is(err, discovery.ErrKnowledgeNotFound) {
		return discovery.NewKnowledgeBase(r.ids.Origin, r.ids.CourseID, r.ids.QuizID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	if kb.Origin == "" {
		kb.Origin = r.ids.Origin
	}
	if kb.CourseID == "" {
		kb.CourseID = r.ids.CourseID
	}
	if kb.QuizID == "" {
		kb.QuizID = r.ids.QuizID
	}
	return kb, nil
}

// Run takes the quiz until the knowledge base is satisfied, saving after
// every attempt. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context) (*discovery.KnowledgeBase, error) {
	log := config.WithContext(ctx)

	kb, err := r.Load()
	if err != nil {
		return nil, err
	}
	r.tracker.Publish(kb, nil)

	stats := kb.Stats()
	log.Infof("Loaded quiz %s (seen %d, know %d, confirming %d)", kb.QuizID, stats.Seen, stats.Known, stats.Confirming)

	for !kb.IsSatisfied() {
		if err := ctx.Err(); err != nil {
			return kb, err
		}

		submissionDelay := util.RandomDuration(r.rand, r.delays.SubmissionMin, r.delays.SubmissionMax)
		retakeDelay := util.RandomDuration(r.rand, r.delays.RetakeMin, r.delays.RetakeMax)

		next, summary, err := r.attempts.Run(ctx, kb, submissionDelay)
		if err != nil {
			log.WithError(err).Error("Attempt failed")
		}
		kb = next

		if err := r.repo.Save(kb); err != nil {
			log.WithError(err).Error("Failed to save knowledge base")
		}
		r.tracker.Publish(kb, summary)

		if err := r.sleep(ctx, retakeDelay); err != nil {
			return kb, err
		}
	}

	log.Info("Every question is answered and confirmed")
	return kb, nil
}
