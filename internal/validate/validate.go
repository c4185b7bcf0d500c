// Package validate implements the per-entity input schemas for create and
// update payloads. Every schema reports all violated fields at once, never
// just the first. Update schemas reuse the create rules with every field
// optional, so a field that is present is always held to the same
// constraint in both operations.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// FieldError names a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every field-level violation found in one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, ", ")
}

// Has reports whether a violation was recorded for the named field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e *Errors) add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}

// ParseID validates a path-parameter identifier before any store lookup.
// Malformed identifiers never reach the repository layer.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id format")
	}
	return id, nil
}

// rule ties a field name to its per-value constraint check. present is
// false when the payload omitted the field entirely.
type rule struct {
	name    string
	present bool
	check   func(*Errors)
}

// runCreate applies every rule and additionally requires the named fields
// to be present. This is the create-schema path.
func runCreate(rules []rule, required ...string) Errors {
	req := make(map[string]bool, len(required))
	for _, n := range required {
		req[n] = true
	}
	var errs Errors
	for _, r := range rules {
		if !r.present {
			if req[r.name] {
				errs.add(r.name, r.name+" is required")
			}
			continue
		}
		r.check(&errs)
	}
	return errs
}

// runUpdate applies only the rules whose fields are present. Every field
// is optional on update but keeps its create constraint.
func runUpdate(rules []rule) Errors {
	var errs Errors
	for _, r := range rules {
		if r.present {
			r.check(&errs)
		}
	}
	return errs
}

// ---- per-field constraint checks ----

func strMin(errs *Errors, field, v string, n int) {
	if len(v) < n {
		errs.add(field, fmt.Sprintf("must be at least %d characters", n))
	}
}

func strMax(errs *Errors, field, v string, n int) {
	if len(v) > n {
		errs.add(field, fmt.Sprintf("must be at most %d characters", n))
	}
}

func emailOK(errs *Errors, field, v string) {
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		errs.add(field, "must be a valid email address")
	}
}

func urlOK(errs *Errors, field, v string) {
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs.add(field, "must be a valid URL")
	}
}

func uuidOK(errs *Errors, field, v string) {
	if _, err := uuid.Parse(v); err != nil {
		errs.add(field, "must be a valid UUID")
	}
}

func positive(errs *Errors, field string, v float64) {
	if v <= 0 {
		errs.add(field, "must be greater than 0")
	}
}

func nonNegative(errs *Errors, field string, v int) {
	if v < 0 {
		errs.add(field, "must be 0 or greater")
	}
}
