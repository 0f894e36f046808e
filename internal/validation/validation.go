// Package validation holds the field checks run by the employee form before
// anything reaches the network.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kingrea/staff-directory/internal/employee"
)

const (
	MinAge = 20
	MaxAge = 40
)

// Verdict is the pass/fail result of a single field check.
type Verdict struct {
	IsValid bool
	Message string
}

func pass() Verdict { return Verdict{IsValid: true} }

func fail(message string) Verdict { return Verdict{Message: message} }

// RequiredString fails when value is empty or only whitespace.
func RequiredString(value, fieldName string) Verdict {
	if strings.TrimSpace(value) == "" {
		return fail(fmt.Sprintf("%s is required.", fieldName))
	}
	return pass()
}

// Age checks a coerced age. A nil value means the field was left empty.
func Age(value *float64) Verdict {
	if value == nil {
		return fail("Age is required.")
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return fail("Age must be an integer.")
	}
	if v < MinAge || v > MaxAge {
		return fail(fmt.Sprintf("Age must be between %d and %d.", MinAge, MaxAge))
	}
	return pass()
}

// ParseAge coerces raw form text for Age. Empty text yields nil; text that is
// not a number yields NaN.
func ParseAge(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		v = math.NaN()
	}
	return &v
}

// Hobby checks the comma-joined hobby field.
func Hobby(value string) Verdict {
	if strings.TrimSpace(value) == "" {
		return fail("Hobby is required.")
	}
	n := len(employee.SplitHobbies(value))
	if n < 1 || n > employee.MaxHobbies {
		return fail(fmt.Sprintf("Hobby must contain 1 to %d items.", employee.MaxHobbies))
	}
	return pass()
}
