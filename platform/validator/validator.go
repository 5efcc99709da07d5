// Package validator wraps go-playground validation for handlers that bind
// outside gin's binding tags, such as query-parameter structs with validate
// tags.
package validator

import "github.com/go-playground/validator/v10"

// Validator is an injectable validation instance. Handlers receive one from
// the composition root instead of sharing a package global.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator. Custom rules can be added with RegisterValidation.
func New() *Validator {
	return &Validator{
		v: validator.New(),
	}
}

// Struct validates a struct based on its validate tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single value against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
