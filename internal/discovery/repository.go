package discovery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrKnowledgeNotFound = errors.New("knowledge base not found")

type Repository interface {
	Load(quizID string) (*KnowledgeBase, error)
	Save(kb *KnowledgeBase) error
}

type fileRepository struct {
	dir string
}

// NewFileRepository stores one JSON file per quiz under dir, creating dir if
// needed.
func NewFileRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &fileRepository{dir: dir}, nil
}

func (r *fileRepository) path(quizID string) string {
	return filepath.Join(r.dir, filepath.Base(filepath.Clean(quizID))+".json")
}

func (r *fileRepository) Load(quizID string) (*KnowledgeBase, error) {
	b, err := os.ReadFile(r.path(quizID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKnowledgeNotFound
		}
		return nil, err
	}

	var kb KnowledgeBase
	if err := json.Unmarshal(b, &kb); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path(quizID), err)
	}
	if kb.Questions == nil {
		kb.Questions = []*QuestionRecord{}
	}
	if kb.Attempts == nil {
		kb.Attempts = []AttemptRecord{}
	}
	return &kb, nil
}

func (r *fileRepository) Save(kb *KnowledgeBase) error {
	b, err := Encode(kb)
	if err != nil {
		return err
	}

	dst := r.path(kb.QuizID)
	tmp, err := os.CreateTemp(r.dir, filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Encode renders kb the way it is stored on disk: four-space indented JSON.
func Encode(kb *KnowledgeBase) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(kb); err != nil {
		return nil, fmt.Errorf("encode knowledge base: %w", err)
	}
	return buf.Bytes(), nil
}
