package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission is one settled form submission, kept as operational history.
type Submission struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	Form       string         `gorm:"size:32;index" json:"form"`
	UserID     int64          `gorm:"index" json:"user_id"`
	Method     string         `gorm:"size:8" json:"method"`
	Path       string         `gorm:"size:255" json:"path"`
	Status     int            `json:"status"`
	Outcome    string         `gorm:"size:32;index" json:"outcome"`
	Errors     datatypes.JSON `gorm:"type:jsonb" json:"errors,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (s *Submission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
