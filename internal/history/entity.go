package history

import (
	"time"

	"github.com/google/uuid"
)

// AttemptEntry is one completed attempt as stored in the history table.
type AttemptEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       string    `gorm:"type:text;not null;index" json:"quiz_id"`
	CourseID     string    `gorm:"type:text;not null" json:"course_id"`
	Attempt      int       `gorm:"not null" json:"attempt"`
	SubmissionID int64     `gorm:"not null" json:"submission_id"`
	Correct      int       `gorm:"not null;default:0" json:"correct"`
	Total        int       `gorm:"not null;default:0" json:"total"`
	Seen         int       `gorm:"not null;default:0" json:"seen"`
	Known        int       `gorm:"not null;default:0" json:"known"`
	Confirming   int       `gorm:"not null;default:0" json:"confirming"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AttemptEntry) TableName() string {
	return "attempt_history"
}
