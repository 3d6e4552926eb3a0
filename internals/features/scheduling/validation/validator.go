// file: internals/features/scheduling/validation/validator.go
package validation

import (
	"github.com/go-playground/validator/v10"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// New returns a validator that also understands the scheduling field formats:
//
//	tod        "HH:MM" or "HH:MM:SS"
//	weekday    MONDAY..SUNDAY (any case)
//	classroom  a code from the classroom registry (any case)
//	isodate    "YYYY-MM-DD"
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tod", func(fl validator.FieldLevel) bool {
		_, err := dbtime.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := dbtime.ParseDay(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("classroom", func(fl validator.FieldLevel) bool {
		_, err := roomModel.ParseClassroom(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := dbtime.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}
