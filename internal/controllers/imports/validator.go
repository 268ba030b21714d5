package importsController

import (
	"errors"
	"fmt"
	. "pulse360/internal/models"
	"pulse360/internal/utils"
	"strings"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidEmail         = errors.New("invalid email")
)

// RowValidator checks one canonical record at a time. Failures are row-level:
// the caller records them and moves on, they never abort the batch.
type RowValidator struct {
	email *utils.EmailValidator
}

func NewRowValidator() *RowValidator {
	return &RowValidator{email: utils.NewEmailValidator()}
}

func (v *RowValidator) Validate(record *CanonicalRecord) error {
	var missing []string
	if record.EmployeeID == "" {
		missing = append(missing, FieldEmployeeID)
	}
	if record.FirstName == "" {
		missing = append(missing, FieldFirstName)
	}
	if record.LastName == "" {
		missing = append(missing, FieldLastName)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	// Email is optional; only a non-empty malformed value fails the row.
	if record.Email != "" {
		result := v.email.Validate(record.Email)
		if !result.IsValid {
			return fmt.Errorf("%w: %q", ErrInvalidEmail, record.Email)
		}
		record.Email = result.Normalized
	}

	return nil
}
