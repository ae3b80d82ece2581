package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saulo-duarte/quizsolver/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleKnowledgeBase() *discovery.KnowledgeBase {
	kb := discovery.NewKnowledgeBase("https://canvas.example.edu", "123", "456")
	kb.Questions = append(kb.Questions,
		&discovery.QuestionRecord{
			ID:          1,
			Type:        discovery.TypeTrueFalse,
			Text:        "<p>Water boils at 100&deg;C at sea level</p>",
			Choices:     []discovery.Choice{{ID: answerTrue, Text: "True"}, {ID: answerFalse, Text: "False"}},
			Tried:       []int64{answerTrue},
			CorrectID:   ptr(answerTrue),
			Encountered: 2,
		},
		&discovery.QuestionRecord{
			ID:          2,
			Type:        discovery.TypeMultipleChoice,
			Text:        "<b>Pick</b> the prime",
			Choices:     []discovery.Choice{{ID: 7, Text: "4"}, {ID: 8, Text: "5"}, {ID: 9, Text: "6"}},
			Tried:       []int64{9},
			Encountered: 1,
		},
	)
	kb.Attempts = append(kb.Attempts, discovery.AttemptRecord{Attempt: 1, SubmissionID: 555, ValidationToken: "vt"})
	return kb
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "quiz-data")
	repo, err := discovery.NewFileRepository(dir)
	require.NoError(t, err)

	kb := sampleKnowledgeBase()
	require.NoError(t, repo.Save(kb))

	first, err := os.ReadFile(filepath.Join(dir, "456.json"))
	require.NoError(t, err)

	loaded, err := repo.Load("456")
	require.NoError(t, err)
	assert.Equal(t, kb, loaded)

	require.NoError(t, repo.Save(loaded))
	second, err := os.ReadFile(filepath.Join(dir, "456.json"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestFileRepositoryExistingDir(t *testing.T) {
	dir := t.TempDir()
	_, err := discovery.NewFileRepository(dir)
	require.NoError(t, err)
	_, err = discovery.NewFileRepository(dir)
	assert.NoError(t, err)
}

func TestFileRepositoryLoadMissing(t *testing.T) {
	repo, err := discovery.NewFileRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load("404")
	assert.ErrorIs(t, err, discovery.ErrKnowledgeNotFound)
}

func TestFileRepositoryLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "456.json"), []byte("{not json"), 0o644))
	repo, err := discovery.NewFileRepository(dir)
	require.NoError(t, err)

	_, err = repo.Load("456")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, discovery.ErrKnowledgeNotFound)
}

func TestLoadLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `{
    "origin": "https://canvas.example.edu",
    "courseID": "123",
    "quizID": "456",
    "submissions": [{"attempt": 1, "id": 555, "validationToken": "vt"}],
    "questions": [
        {
            "id": 1,
            "type": "true_false_question",
            "text": "<p>Q</p>",
            "answers": [{"id": 101, "text": "True", "weight": 0}, {"id": 102, "text": "False", "weight": 100}],
            "attempted": [101, 102],
            "correctID": 102,
            "encountered": 2
        }
    ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "456.json"), []byte(legacy), 0o644))
	repo, err := discovery.NewFileRepository(dir)
	require.NoError(t, err)

	kb, err := repo.Load("456")
	require.NoError(t, err)
	require.Len(t, kb.Questions, 1)
	assert.Equal(t, answerFalse, *kb.Questions[0].CorrectID)
	assert.Equal(t, []int64{answerTrue, answerFalse}, kb.Questions[0].Tried)
	assert.Equal(t, int64(555), kb.Attempts[0].SubmissionID)
	assert.True(t, kb.IsSatisfied())
}

func TestEncodeIsIndented(t *testing.T) {
	b, err := discovery.Encode(discovery.NewKnowledgeBase("https://x", "1", "2"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"origin\": \"https://x\",\n    \"courseID\": \"1\",\n    \"quizID\": \"2\",\n    \"questions\": [],\n    \"submissions\": []\n}\n", string(b))
}
