package validator

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chaitali929/coremodeling/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-registrable-role", validateRegistrableRole)
	mustRegister("is-gender", validateGender)
}

// admins are seeded, never self-registered
func validateRegistrableRole(fl validator.FieldLevel) bool {
	switch models.AccountRole(fl.Field().String()) {
	case models.RoleArtist, models.RoleRecruiter:
		return true
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	switch value {
	case "", "male", "female", "other":
		return true
	}
	return false
}
