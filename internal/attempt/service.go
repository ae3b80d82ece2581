package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/quizsolver/internal/canvas"
	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/saulo-duarte/quizsolver/internal/discovery"
	"github.com/saulo-duarte/quizsolver/internal/history"
	util "github.com/saulo-duarte/quizsolver/internal/utils"
	"github.com/sirupsen/logrus"
)

type Service interface {
	// Run takes the quiz once. It returns the updated knowledge base, or kb
	// itself when the attempt was abandoned. A nil summary with a nil error
	// means the service refused the attempt or asked a question that cannot
	// be answered; both are already logged.
	Run(ctx context.Context, kb *discovery.KnowledgeBase, submissionDelay time.Duration) (*discovery.KnowledgeBase, *Summary, error)
}

type service struct {
	client  canvas.QuizClient
	engine  *discovery.Engine
	history history.Repository
	sleep   util.Sleeper
}

// NewService wires an orchestrator. historyRepo may be nil.
func NewService(client canvas.QuizClient, engine *discovery.Engine, historyRepo history.Repository, sleep util.Sleeper) Service {
	if sleep == nil {
		sleep = util.Sleep
	}
	return &service{
		client:  client,
		engine:  engine,
		history: historyRepo,
		sleep:   sleep,
	}
}

func (s *service) Run(ctx context.Context, kb *discovery.KnowledgeBase, submissionDelay time.Duration) (*discovery.KnowledgeBase, *Summary, error) {
	ctx = config.WithAttemptID(ctx, uuid.NewString())
	log := config.WithContext(ctx)

	sub, err := s.client.StartAttempt(ctx, kb.CourseID, kb.QuizID)
	if err != nil {
		var unexpected *canvas.UnexpectedResponseError
		if errors.As(err, &unexpected) {
			log.WithField("response", unexpected.Body).Error("Quiz service did not start a submission")
			return kb, nil, nil
		}
		return kb, nil, err
	}
	log = log.WithFields(logrus.Fields{"attempt": sub.Attempt, "submission_id": sub.ID})
	log.Info("Started quiz attempt")

	questions, err := s.client.ListQuestions(ctx, sub.ID)
	if err != nil {
		return kb, nil, err
	}

	observed := toDiscoveryQuestions(questions)
	if err := discovery.CheckAnswerable(observed); err != nil {
		log.WithError(err).Error("Abandoning attempt")
		return kb, nil, nil
	}

	next := kb.Clone()
	answers := make([]canvas.AnswerSubmission, 0, len(observed))
	submitted := make([]discovery.Submitted, 0, len(observed))
	for _, q := range observed {
		answerID, err := s.engine.ChooseAnswer(ctx, next, q)
		if err != nil {
			return kb, nil, err
		}
		answers = append(answers, canvas.AnswerSubmission{QuestionID: q.ID, AnswerID: answerID})
		submitted = append(submitted, discovery.Submitted{QuestionID: q.ID, AnswerID: answerID})
	}

	log.Infof("Answered %d questions, waiting %s before submitting", len(answers), submissionDelay.Round(time.Second))
	if err := s.sleep(ctx, submissionDelay); err != nil {
		return kb, nil, err
	}

	if err := s.client.SubmitAnswers(ctx, sub, answers); err != nil {
		return kb, nil, err
	}
	if err := s.client.FinalizeAttempt(ctx, kb.CourseID, kb.QuizID, sub); err != nil {
		return kb, nil, err
	}

	results, err := s.client.FetchResults(ctx, sub.ID)
	if err != nil {
		return kb, nil, err
	}

	tally := s.engine.RecordResults(ctx, next, submitted, toResults(results))
	next.Attempts = append(next.Attempts, discovery.AttemptRecord{
		Attempt:         sub.Attempt,
		SubmissionID:    sub.ID,
		ValidationToken: sub.ValidationToken,
	})

	summary := &Summary{
		Attempt: sub.Attempt,
		Correct: tally.Correct,
		Total:   tally.Total,
		Stats:   next.Stats(),
	}
	log.Info(summary.String())

	s.recordHistory(ctx, next, sub, summary)
	return next, summary, nil
}

func (s *service) recordHistory(ctx context.Context, kb *discovery.KnowledgeBase, sub *canvas.Submission, summary *Summary) {
	if s.history == nil {
		return
	}
	entry := &history.AttemptEntry{
		QuizID:       kb.QuizID,
		CourseID:     kb.CourseID,
		Attempt:      sub.Attempt,
		SubmissionID: sub.ID,
		Correct:      summary.Correct,
		Total:        summary.Total,
		Seen:         summary.Seen,
		Known:        summary.Known,
		Confirming:   summary.Confirming,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to record attempt history")
	}
}

func toDiscoveryQuestions(questions []canvas.Question) []discovery.Question {
	out := make([]discovery.Question, 0, len(questions))
	for _, q := range questions {
		choices := make([]discovery.Choice, 0, len(q.Answers))
		for _, a := range q.Answers {
			choices = append(choices, discovery.Choice{ID: a.ID, Text: a.Text})
		}
		out = append(out, discovery.Question{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Choices: choices,
		})
	}
	return out
}

func toResults(questions []canvas.Question) []discovery.Result {
	out := make([]discovery.Result, 0, len(questions))
	for _, q := range questions {
		out = append(out, discovery.Result{QuestionID: q.ID, Correct: q.Correct})
	}
	return out
}
