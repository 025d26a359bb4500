package workflow

import (
	"context"
	"time"

	"jobboard_front/pkg/apperrors"
)

type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeAuthMissing Outcome = "auth_missing"
	OutcomeAPIError    Outcome = "api_error"
	OutcomeUnexpected  Outcome = "unexpected"
)

// Result describes one settled submission.
type Result struct {
	Form     string
	UserID   int64
	Method   string
	Path     string
	Status   int
	Outcome  Outcome
	Errors   []string
	Duration time.Duration
}

// Observer is told about every submission that got past validation.
type Observer interface {
	Observe(ctx context.Context, result Result)
}

func outcomeOf(err *apperrors.AppError) Outcome {
	if err.Code == apperrors.CodeAPIRequestFailed {
		return OutcomeAPIError
	}
	return OutcomeUnexpected
}
