package prediction

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/career-predictor/internal/types"
)

// validate is shared; a *validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their display name ("Extra Curricular") so error
	// messages use the same names clients send.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("json")
	})
	return v
}

// displayToField maps "Extra Curricular" → "extra_curricular".
var displayToField = func() map[string]string {
	m := make(map[string]string, len(types.Columns))
	for _, c := range types.Columns {
		m[c.Display] = c.Field
	}
	return m
}()

// Validate builds a Student from fields keyed by canonical name
// ("extra_curricular") or display name ("Extra Curricular"); both forms
// may be mixed. Validation is structural only: every field must be present
// and non-empty, and no key may be unknown or given twice.
func Validate(fields map[string]string) (types.Student, error) {
	canonical := make(map[string]string, len(fields))
	for k, v := range fields {
		name := k
		if f, ok := displayToField[k]; ok {
			name = f
		}
		if _, ok := (types.Student{}).Value(name); !ok {
			return types.Student{}, &SchemaValidationError{Err: fmt.Errorf("unknown field %q", k)}
		}
		if _, dup := canonical[name]; dup {
			return types.Student{}, &SchemaValidationError{Err: fmt.Errorf("field %q given more than once", name)}
		}
		canonical[name] = v
	}

	s := types.Student{
		StudentID:               canonical[types.FieldStudentID],
		Gender:                  canonical[types.FieldGender],
		Age:                     canonical[types.FieldAge],
		Major:                   canonical[types.FieldMajor],
		GPA:                     canonical[types.FieldGPA],
		ExtraCurricular:         canonical[types.FieldExtraCurricular],
		NumProgrammingLanguages: canonical[types.FieldNumProgrammingLanguages],
		NumPastInternships:      canonical[types.FieldNumPastInternships],
	}

	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return types.Student{}, &SchemaValidationError{Fields: fieldErrs, Err: err}
		}
		return types.Student{}, &SchemaValidationError{Err: err}
	}

	return s, nil
}
