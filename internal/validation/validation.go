// Package validation checks submitted forms against struct-tag rules and
// reports failures per field, using the form's JSON field names.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Messages maps a JSON field name and a rule tag to a user-facing message.
type Messages map[string]map[string]string

// DateLayout is the calendar-day format accepted by the isodate rule.
const DateLayout = "2006-01-02"

// Validator wraps a go-playground validator with the storefront's custom
// rules and per-form message tables.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time

	mu       sync.RWMutex
	messages map[reflect.Type]Messages
}

type Option func(*Validator)

// WithClock overrides the clock used by the notpast rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		messages: make(map[reflect.Type]Messages),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("isodate", isISODate)
	_ = v.validate.RegisterValidation("notpast", v.notPast)
	_ = v.validate.RegisterValidation("posdecimal", isPositiveDecimal)

	return v
}

// RegisterMessages sets the message table used for a form type.
func (v *Validator) RegisterMessages(form any, msgs Messages) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages[indirectType(form)] = msgs
}

// Struct validates form and returns nil when every rule passes.
func (v *Validator) Struct(form any) FieldErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": {err.Error()}}
	}

	v.mu.RLock()
	msgs := v.messages[indirectType(form)]
	v.mu.RUnlock()

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out.Add(field, message(msgs, fe))
	}
	return out
}

func message(msgs Messages, fe validator.FieldError) string {
	if byTag, ok := msgs[fe.Field()]; ok {
		if m, ok := byTag[fe.Tag()]; ok {
			return m
		}
		if m, ok := byTag["*"]; ok {
			return m
		}
	}
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "isodate":
		return "Invalid date."
	case "notpast":
		return "Date cannot be in the past."
	case "posdecimal":
		return "Must be a positive number."
	}
	return "Invalid value."
}

func indirectType(form any) reflect.Type {
	t := reflect.TypeOf(form)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// ParseDate accepts a calendar day (2006-01-02) or an RFC 3339 timestamp and
// returns the instant in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseDay is ParseDate reduced to its calendar day: midnight UTC of the day
// the instant falls on in UTC. A timestamp's own offset does not pick the day.
func ParseDay(s string) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(24 * time.Hour), nil
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// notPast compares UTC calendar days. It passes for unparseable input so only
// isodate reports it.
func (v *Validator) notPast(fl validator.FieldLevel) bool {
	day, err := ParseDay(fl.Field().String())
	if err != nil {
		return true
	}
	today := v.now().UTC().Truncate(24 * time.Hour)
	return !day.Before(today)
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive()
}

// Amount is a numeric form value that may arrive as a JSON number or a
// JSON string. It keeps the raw text so the posdecimal rule can judge it.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = Amount(s)
	return nil
}

// Decimal parses the amount. Callers validate first.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(a)))
}
