package board

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/clubboard/core"
)

var (
	statusTag  = "status"
	statusText = "status must be one of not_started, in_progress or done"

	impactTag  = "impact"
	impactText = "impact must be one of Low, Medium, High or Critical"
)

// InitValidators registers the board validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)

	_ = validate.RegisterValidation(impactTag, impactValidation)
	core.RegisterCustomTranslation(validate, translator, impactTag, impactText)
}

// Custom Validators

// statusValidation only allows the known Statuses.
func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

// impactValidation only allows the known Impacts.
func impactValidation(fl validator.FieldLevel) bool {
	return Impact(fl.Field().String()).Valid()
}
