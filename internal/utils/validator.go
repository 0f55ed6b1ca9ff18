// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sisvmarcas/crm-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("whatsapp", validateWhatsapp)
	validate.RegisterValidation("lead_status", validateLeadStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateWhatsapp accepts phone-looking strings: digits with optional
// leading +, spaces, dashes and parentheses, 8-20 digits total.
func validateWhatsapp(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	digits := regexp.MustCompile(`\D`).ReplaceAllString(number, "")
	if len(digits) < 8 || len(digits) > 20 {
		return false
	}
	matched, _ := regexp.MatchString(`^\+?[0-9()\s-]+$`, number)
	return matched
}

func validateLeadStatus(fl validator.FieldLevel) bool {
	return models.LeadStatus(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "whatsapp":
		return "Invalid WhatsApp number"
	case "lead_status":
		return "Unknown lead status"
	default:
		return e.Field() + " is invalid"
	}
}
