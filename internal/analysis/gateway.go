package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Model keys understood by inference gateways.
const (
	ModelSkills          = "skills"
	ModelExperience      = "experience"
	ModelEducation       = "education"
	ModelQuality         = "quality"
	ModelRecommendations = "recommendations"
)

// DefaultGatewayTimeout bounds a single gateway call.
const DefaultGatewayTimeout = 30 * time.Second

// Response is the decoded JSON object returned by a gateway.
type Response map[string]any

// Gateway runs one inference call for a model key. Implementations must
// space consecutive calls and must not retry on their own.
type Gateway interface {
	Call(ctx context.Context, model string, input string, timeout time.Duration) (Response, error)
}

type GatewayErrorKind string

const (
	GatewayAuth        GatewayErrorKind = "auth"
	GatewayNotFound    GatewayErrorKind = "not_found"
	GatewayRateLimited GatewayErrorKind = "rate_limited"
	GatewayLoading     GatewayErrorKind = "loading"
	GatewayTimeout     GatewayErrorKind = "timeout"
	GatewayOther       GatewayErrorKind = "other"
)

type GatewayError struct {
	Kind  GatewayErrorKind
	Model string
	Err   error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gateway %s error for model %q", e.Kind, e.Model)
	}
	return fmt.Sprintf("gateway %s error for model %q: %v", e.Kind, e.Model, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Transient reports whether a later retry of the analysis may succeed.
func (e *GatewayError) Transient() bool {
	switch e.Kind {
	case GatewayAuth, GatewayNotFound:
		return false
	default:
		return true
	}
}

func NewGatewayError(kind GatewayErrorKind, model string, err error) *GatewayError {
	return &GatewayError{Kind: kind, Model: model, Err: err}
}

// AsGatewayError extracts a *GatewayError from err. Errors of any other type
// are reported as GatewayOther.
func AsGatewayError(err error, model string) *GatewayError {
	if err == nil {
		return nil
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewGatewayError(GatewayTimeout, model, err)
	}
	return NewGatewayError(GatewayOther, model, err)
}
