package container

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/saulo-duarte/quizsolver/internal/attempt"
	"github.com/saulo-duarte/quizsolver/internal/auth"
	"github.com/saulo-duarte/quizsolver/internal/canvas"
	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/saulo-duarte/quizsolver/internal/discovery"
	"github.com/saulo-duarte/quizsolver/internal/history"
	"github.com/saulo-duarte/quizsolver/internal/runner"
	"github.com/saulo-duarte/quizsolver/internal/status"
	util "github.com/saulo-duarte/quizsolver/internal/utils"
)

type Container struct {
	IDs     canvas.QuizIdentifiers
	Runner  *runner.Runner
	Tracker *status.Tracker
	Status  *status.Server
	// Token for the status API, empty when it is disabled.
	StatusToken string
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := config.WithContext(ctx)

	ids, err := canvas.ParseQuizURL(cfg.QuizURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if err := ids.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	repo, err := discovery.NewFileRepository(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	var historyRepo history.Repository
	if cfg.HistoryDSN != "" {
		db, err := history.Connect(ctx, cfg.HistoryDSN)
		if err != nil {
			return nil, err
		}
		historyRepo = history.NewRepository(db)
		log.Info("Attempt history enabled")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	client := canvas.NewClient(ctx, ids.Origin, cfg.Token, canvas.DefaultRate)
	attempts := attempt.NewService(client, discovery.NewEngine(rng), historyRepo, util.Sleep)
	tracker := status.NewTracker(ids.QuizID)

	c := &Container{
		IDs:     ids,
		Runner:  runner.New(ids, repo, attempts, tracker, rng, util.Sleep, runner.DefaultDelays),
		Tracker: tracker,
	}

	if cfg.StatusAddr != "" {
		authn, err := auth.NewAuthenticator(cfg.StatusSecret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		token, err := authn.GenerateJWT("operator", "viewer", 30*24*time.Hour)
		if err != nil {
			return nil, err
		}
		c.StatusToken = token
		c.Status = status.NewServer(cfg.StatusAddr, status.Routes(status.NewHandler(tracker, historyRepo), authn))
	}

	return c, nil
}
