package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/quizsolver/internal/config"
	"github.com/sirupsen/logrus"
)

var ErrNoChoices = errors.New("question has no answer choices")

type UnanswerableError struct {
	QuestionID int64
	Type       string
}

func (e *UnanswerableError) Error() string {
	return fmt.Sprintf("cannot answer question of type %s (id: %d)", e.Type, e.QuestionID)
}

// Source is the randomness the engine draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type Engine struct {
	rand Source
}

func NewEngine(src Source) *Engine {
	return &Engine{rand: src}
}

// CheckAnswerable returns an *UnanswerableError for the first question whose
// type cannot be answered by elimination.
func CheckAnswerable(questions []Question) error {
	for _, q := range questions {
		if !Answerable(q.Type) {
			return &UnanswerableError{QuestionID: q.ID, Type: q.Type}
		}
	}
	return nil
}

// ChooseAnswer picks the answer to submit for q and records the choice in kb.
//
// A new question gets a uniformly random choice. A question with a known
// correct answer gets that answer again. Otherwise the pick is uniform over
// the choices not yet tried. If every choice has been tried without one being
// confirmed, the pick falls back to the full choice set and nothing new is
// appended to Tried.
func (e *Engine) ChooseAnswer(ctx context.Context, kb *KnowledgeBase, q Question) (int64, error) {
	if !Answerable(q.Type) {
		return 0, &UnanswerableError{QuestionID: q.ID, Type: q.Type}
	}
	if len(q.Choices) == 0 {
		return 0, fmt.Errorf("question %d: %w", q.ID, ErrNoChoices)
	}

	rec, lookup := kb.LookupOrInsert(q)
	rec.Encountered++

	if lookup == Inserted {
		pick := e.pick(q.Choices)
		rec.Tried = append(rec.Tried, pick)
		return pick, nil
	}

	rec.Type = q.Type
	rec.Text = q.Text
	rec.Choices = append([]Choice(nil), q.Choices...)

	if rec.CorrectID != nil {
		return *rec.CorrectID, nil
	}

	remaining := make([]Choice, 0, len(q.Choices))
	for _, c := range q.Choices {
		if !rec.HasTried(c.ID) {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		config.WithContext(ctx).WithFields(logrus.Fields{
			"question_id": q.ID,
			"tried":       len(rec.Tried),
		}).Warn("Every choice was tried without a correct result, picking from all choices")
		return e.pick(q.Choices), nil
	}

	pick := e.pick(remaining)
	rec.Tried = append(rec.Tried, pick)
	return pick, nil
}

type Tally struct {
	Correct int
	Total   int
}

// RecordResults marks the submitted answer as correct for every question the
// results flag as correct. A correct answer that is already known is never
// replaced.
func (e *Engine) RecordResults(ctx context.Context, kb *KnowledgeBase, submitted []Submitted, results []Result) Tally {
	log := config.WithContext(ctx)

	answers := make(map[int64]int64, len(submitted))
	for _, s := range submitted {
		answers[s.QuestionID] = s.AnswerID
	}

	tally := Tally{Total: len(results)}
	for _, r := range results {
		if !r.Correct {
			continue
		}
		tally.Correct++

		rec := kb.Question(r.QuestionID)
		if rec == nil || rec.CorrectID != nil {
			continue
		}
		answer, ok := answers[r.QuestionID]
		if !ok {
			log.WithField("question_id", r.QuestionID).Warn("Result marked correct for a question that was not submitted")
			continue
		}
		rec.CorrectID = &answer
		if !rec.HasTried(answer) {
			rec.Tried = append(rec.Tried, answer)
		}
	}
	return tally
}

func (e *Engine) pick(choices []Choice) int64 {
	return choices[e.rand.Intn(len(choices))].ID
}
