package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validator wraps struct tag validation and business rule validation
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)

// New creates a validator with all custom rules registered
func New() *Validator {
	validate := validator.New()

	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})

	_ = validate.RegisterValidation("sort_order", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || v == "asc" || v == "desc" || v == "ASC" || v == "DESC"
	})

	_ = validate.RegisterValidation("role_name", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "admin", "survey-creator", "survey-respondent":
			return true
		}
		return false
	})

	return &Validator{
		validate: validate,
		business: NewBusinessValidator(validate),
	}
}

// Validate runs struct tag validation and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// Var validates a single variable against a tag expression
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// GetBusinessValidator returns the business rule validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}
