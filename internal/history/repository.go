package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository interface {
	Record(ctx context.Context, entry *AttemptEntry) error
	ListByQuiz(ctx context.Context, quizID string) ([]*AttemptEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Connect opens the Postgres database at dsn and makes sure the history
// table exists.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&AttemptEntry{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return db, nil
}

func (r *repository) Record(ctx context.Context, entry *AttemptEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListByQuiz(ctx context.Context, quizID string) ([]*AttemptEntry, error) {
	var entries []*AttemptEntry
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
