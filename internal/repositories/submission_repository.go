package repositories

import (
	"context"
	"time"

	"jobboard_front/internal/models"

	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	CountByOutcome(ctx context.Context, since time.Time) (map[string]int64, error)
}

type SubmissionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &SubmissionRepositoryImpl{db: db}
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// CountByOutcome groups submissions created after since by outcome.
func (r *SubmissionRepositoryImpl) CountByOutcome(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Outcome string
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("outcome, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Outcome] = row.Count
	}
	return counts, nil
}
