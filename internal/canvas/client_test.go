package canvas_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/quizsolver/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, h http.HandlerFunc) canvas.QuizClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return canvas.NewClient(context.Background(), srv.URL, "tok", rate.Inf)
}

func TestStartAttempt(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/courses/1/quizzes/2/submissions", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Write([]byte(`{"quiz_submissions":[{"id":99,"attempt":3,"validation_token":"vt"}]}`))
		})

		sub, err := c.StartAttempt(context.Background(), "1", "2")
		require.NoError(t, err)
		assert.Equal(t, &canvas.Submission{ID: 99, Attempt: 3, ValidationToken: "vt"}, sub)
	})

	t.Run("MissingSubmissions", func(t *testing.T) {
		raw := `{"status":"forbidden","message":"You cannot take this quiz"}`
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(raw))
		})

		_, err := c.StartAttempt(context.Background(), "1", "2")
		var unexpected *canvas.UnexpectedResponseError
		require.True(t, errors.As(err, &unexpected))
		assert.Equal(t, raw, unexpected.Body)
	})

	t.Run("StatusError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))
		})

		_, err := c.StartAttempt(context.Background(), "1", "2")
		var statusErr *canvas.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	})
}

func TestListQuestionsAndResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/quiz_submissions/99/questions", r.URL.Path)
		w.Write([]byte(`{"quiz_submission_questions":[
			{"id":10,"question_type":"true_false_question","question_text":"<p>Sky is blue</p>",
			 "answers":[{"id":1,"text":"True"},{"id":2,"text":"False"}],"correct":true}
		]}`))
	})

	qs, err := c.ListQuestions(context.Background(), 99)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, int64(10), qs[0].ID)
	assert.Equal(t, "true_false_question", qs[0].Type)
	assert.Equal(t, []canvas.Answer{{ID: 1, Text: "True"}, {ID: 2, Text: "False"}}, qs[0].Answers)

	results, err := c.FetchResults(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, results[0].Correct)
}

func TestListQuestionsMissingList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.ListQuestions(context.Background(), 99)
	var unexpected *canvas.UnexpectedResponseError
	assert.True(t, errors.As(err, &unexpected))
}

func TestSubmitAndFinalize(t *testing.T) {
	sub := &canvas.Submission{ID: 99, Attempt: 3, ValidationToken: "vt"}

	t.Run("SubmitAnswers", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/quiz_submissions/99/questions", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(3), body["attempt"])
			assert.Equal(t, "vt", body["validation_token"])
			assert.Equal(t, []interface{}{
				map[string]interface{}{"id": float64(10), "answer": float64(2)},
			}, body["quiz_questions"])
			w.Write([]byte(`{"quiz_submission_questions":[]}`))
		})

		err := c.SubmitAnswers(context.Background(), sub, []canvas.AnswerSubmission{{QuestionID: 10, AnswerID: 2}})
		assert.NoError(t, err)
	})

	t.Run("FinalizeAttempt", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/courses/1/quizzes/2/submissions/99/complete", r.URL.Path)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(3), body["attempt"])
			assert.NotContains(t, body, "quiz_questions")
			w.Write([]byte(`{"quiz_submissions":[]}`))
		})

		assert.NoError(t, c.FinalizeAttempt(context.Background(), "1", "2", sub))
	})

	t.Run("FinalizeFailure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		err := c.FinalizeAttempt(context.Background(), "1", "2", sub)
		var statusErr *canvas.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, "finalize attempt", statusErr.Op)
	})
}
