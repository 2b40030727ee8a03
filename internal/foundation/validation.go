// Package foundation holds small generic building blocks shared by the
// configuration and assembly layers.
package foundation

import (
	"errors"
	"fmt"
)

// Validator represents a validation function.
type Validator[T any] func(T) ValidationResult

// ValidationResult contains the result of a validation operation.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError represents a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	if fe.Field != "" {
		return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return fe.Message
}

// Valid creates a successful validation result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid creates a failed validation result with errors.
func Invalid(errs ...FieldError) ValidationResult {
	return ValidationResult{Valid: false, Errors: errs}
}

// Fail is Invalid with a single formatted field error.
func Fail(field, code, format string, args ...any) ValidationResult {
	return Invalid(FieldError{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Combine merges multiple validation results.
func (vr ValidationResult) Combine(other ValidationResult) ValidationResult {
	if vr.Valid && other.Valid {
		return Valid()
	}
	all := make([]FieldError, 0, len(vr.Errors)+len(other.Errors))
	all = append(all, vr.Errors...)
	all = append(all, other.Errors...)
	return Invalid(all...)
}

// ToError joins all field errors, or returns nil when valid.
func (vr ValidationResult) ToError() error {
	if vr.Valid {
		return nil
	}
	errs := make([]error, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}

// ValidatorChain runs every validator and collects all failures.
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain.
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain.
func (vc *ValidatorChain[T]) Validate(value T) ValidationResult {
	result := Valid()
	for _, validator := range vc.validators {
		result = result.Combine(validator(value))
	}
	return result
}
