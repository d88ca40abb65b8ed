package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

const gradeTypeTag = "grade_type"

// New returns a validator that knows the grade_type tag and reports fields by
// their json names.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(gradeTypeTag, func(fl validator.FieldLevel) bool {
		return domain.GradeType(fl.Field().String()).Valid()
	})

	return validate
}

// Struct validates s and wraps failures into ierrors.ErrInvalidInput.
func Struct(validate *validator.Validate, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()))
	}

	return fmt.Errorf("%w: %s", ierrors.ErrInvalidInput, strings.Join(fields, ", "))
}
