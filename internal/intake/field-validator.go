package intake

import (
	"fmt"
	"strings"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
)

// Form is the read side of a parsed submission.
type Form interface {
	Value(field string) string
	HasFile(field string) bool
}

// Validate runs a single rule against value.
func (r FieldRule) Validate(value string) error {
	return r.apply(r.Field, value)
}

func (r FieldRule) apply(field, value string) error {
	if strings.TrimSpace(value) == "" {
		if r.Required {
			return domain.NewValidationError(field, "Missing or empty required field: %s", field)
		}
		return nil
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return domain.NewValidationError(field, "%s for %s", r.Message, field)
	}
	if r.Check != nil && !r.Check(value) {
		return domain.NewValidationError(field, "%s for %s", r.Message, field)
	}
	return nil
}

// slot binds a slot rule to the concrete field name for index i.
func (r FieldRule) slot(i int) FieldRule {
	r.Field = fmt.Sprintf(r.Field, i)
	return r
}

// ValidateFields applies rules in order and returns the first failure.
func ValidateFields(form Form, rules []FieldRule) error {
	for _, r := range rules {
		if err := r.apply(r.Field, form.Value(r.Field)); err != nil {
			return err
		}
	}
	return nil
}
