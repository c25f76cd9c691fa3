package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("contact_number", validateContactNumber)
	_ = v.RegisterValidation("document_key", validateDocumentKey)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

var contactNumberPattern = regexp.MustCompile(`^(?:\+94|0)7\d{8}$`)

// validateContactNumber validates a Sri Lankan mobile number in local
// (07XXXXXXXX) or international (+947XXXXXXXX) form
func validateContactNumber(fl validator.FieldLevel) bool {
	return contactNumberPattern.MatchString(fl.Field().String())
}

var documentKeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// validateDocumentKey validates a 24-character hex document store key
func validateDocumentKey(fl validator.FieldLevel) bool {
	return documentKeyPattern.MatchString(fl.Field().String())
}
