package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrSectionNotFound means no header of the requested section family was found.
	ErrSectionNotFound = errors.New("section not found")
	// ErrPatternMismatch means a grammar rule did not recognise its input.
	ErrPatternMismatch = errors.New("pattern mismatch")
	// ErrMalformedEntry means a candidate entry was dropped during validation.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrCategoryFailed means one result category could not be produced.
	ErrCategoryFailed = errors.New("category extraction failed")
	// ErrNoText means there was nothing to analyze.
	ErrNoText = errors.New("no text available to analyze")
)

// ExtractionError records a failure inside one extraction step.
type ExtractionError struct {
	Step    string
	BaseErr error
	Detail  string
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Step, e.BaseErr, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.BaseErr)
}

func (e *ExtractionError) Unwrap() error {
	return e.BaseErr
}

func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

func newExtractionError(step string, base error, detail string) *ExtractionError {
	return &ExtractionError{Step: step, BaseErr: base, Detail: detail}
}
