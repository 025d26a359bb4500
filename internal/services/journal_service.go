package services

import (
	"context"
	"encoding/json"
	"time"

	"jobboard_front/internal/logger"
	"jobboard_front/internal/models"
	"jobboard_front/internal/repositories"
	"jobboard_front/internal/workflow"

	"gorm.io/datatypes"
)

// JournalService appends every settled submission to the submission journal.
// It implements workflow.Observer; write failures are logged and never reach the page.
type JournalService struct {
	repo repositories.SubmissionRepository
}

func NewJournalService(repo repositories.SubmissionRepository) *JournalService {
	return &JournalService{repo: repo}
}

func (s *JournalService) Observe(ctx context.Context, result workflow.Result) {
	submission := &models.Submission{
		Form:       result.Form,
		UserID:     result.UserID,
		Method:     result.Method,
		Path:       result.Path,
		Status:     result.Status,
		Outcome:    string(result.Outcome),
		DurationMS: result.Duration.Milliseconds(),
	}
	if len(result.Errors) > 0 {
		if data, err := json.Marshal(result.Errors); err == nil {
			submission.Errors = datatypes.JSON(data)
		}
	}

	start := time.Now()
	err := s.repo.Create(context.WithoutCancel(ctx), submission)
	logger.DBLog("journal.create", time.Since(start), err)
}

// Stats returns the submission outcomes of the last window.
func (s *JournalService) Stats(ctx context.Context, window time.Duration) (map[string]int64, error) {
	return s.repo.CountByOutcome(ctx, time.Now().Add(-window))
}
