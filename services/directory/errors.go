package directory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation marks input rejected before anything was dispatched.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthenticated means the operation needs a session and none is open.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden means the session may not act on the target record.
	ErrForbidden = errors.New("not permitted for this session")
	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrFeatureUnavailable means the provider's tier does not include the feature.
	ErrFeatureUnavailable = errors.New("feature not available on this tier")
	// ErrEnquiryClosed means a reply targeted a closed thread.
	ErrEnquiryClosed = errors.New("enquiry is closed")
)

// validationError turns validator output into an ErrValidation that names
// each failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, "; "))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
