package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/saulo-duarte/quizsolver/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultRate paces calls to the quiz API.
const DefaultRate = rate.Limit(1)

type QuizClient interface {
	StartAttempt(ctx context.Context, courseID, quizID string) (*Submission, error)
	ListQuestions(ctx context.Context, submissionID int64) ([]Question, error)
	SubmitAnswers(ctx context.Context, sub *Submission, answers []AnswerSubmission) error
	FinalizeAttempt(ctx context.Context, courseID, quizID string, sub *Submission) error
	FetchResults(ctx context.Context, submissionID int64) ([]Question, error)
}

type client struct {
	origin  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a client for the quiz API at origin. Every request carries
// token as a bearer credential. limit caps the request rate; rate.Inf disables
// pacing.
func NewClient(ctx context.Context, origin, token string, limit rate.Limit) QuizClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	return &client{
		origin:  strings.TrimSuffix(origin, "/"),
		http:    oauth2.NewClient(ctx, ts),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (c *client) StartAttempt(ctx context.Context, courseID, quizID string) (*Submission, error) {
	const op = "start attempt"
	path := fmt.Sprintf("/api/v1/courses/%s/quizzes/%s/submissions", courseID, quizID)

	body, err := c.do(ctx, op, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var res startResponse
	if err := json.Unmarshal(body, &res); err != nil || len(res.QuizSubmissions) == 0 {
		return nil, &UnexpectedResponseError{Op: op, Body: string(body)}
	}

	sub := res.QuizSubmissions[0]
	return &sub, nil
}

func (c *client) ListQuestions(ctx context.Context, submissionID int64) ([]Question, error) {
	return c.questions(ctx, "list questions", submissionID)
}

func (c *client) FetchResults(ctx context.Context, submissionID int64) ([]Question, error) {
	return c.questions(ctx, "fetch results", submissionID)
}

func (c *client) SubmitAnswers(ctx context.Context, sub *Submission, answers []AnswerSubmission) error {
	path := fmt.Sprintf("/api/v1/quiz_submissions/%d/questions", sub.ID)
	_, err := c.do(ctx, "submit answers", http.MethodPost, path, submitRequest{
		Attempt:         sub.Attempt,
		ValidationToken: sub.ValidationToken,
		QuizQuestions:   answers,
	})
	return err
}

func (c *client) FinalizeAttempt(ctx context.Context, courseID, quizID string, sub *Submission) error {
	path := fmt.Sprintf("/api/v1/courses/%s/quizzes/%s/submissions/%d/complete", courseID, quizID, sub.ID)
	_, err := c.do(ctx, "finalize attempt", http.MethodPost, path, submitRequest{
		Attempt:         sub.Attempt,
		ValidationToken: sub.ValidationToken,
	})
	return err
}

func (c *client) questions(ctx context.Context, op string, submissionID int64) ([]Question, error) {
	path := fmt.Sprintf("/api/v1/quiz_submissions/%d/questions", submissionID)

	body, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var res questionsResponse
	if err := json.Unmarshal(body, &res); err != nil || res.Questions == nil {
		return nil, &UnexpectedResponseError{Op: op, Body: string(body)}
	}
	return *res.Questions, nil
}

func (c *client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	log := config.WithContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.origin+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, path)
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	if res.StatusCode/100 != 2 {
		return nil, &StatusError{Op: op, StatusCode: res.StatusCode, Body: string(body)}
	}
	return body, nil
}
