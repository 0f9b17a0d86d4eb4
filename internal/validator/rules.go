package validator

import (
	"log"

	"depositshield_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-property-role", validatePropertyRole)
	mustRegister("is-report-type", validateReportType)
}

// Empty values pass; "required" handles presence.

func validatePropertyRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.PropertyRole(value).Valid()
}

func validateReportType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ReportType(value).Valid()
}
