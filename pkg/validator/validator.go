package validator

import (
	"math"
	"strconv"
	"strings"
)

// Validator collects field errors. The first error per field wins.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Filled reports whether a form value counts as provided. "0" is treated as
// not provided, like the empty-check of the original lap form.
func Filled(value string) bool {
	return value != "" && value != "0"
}

// PositiveFloat parses value as a finite float greater than zero.
func PositiveFloat(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
