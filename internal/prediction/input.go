package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aanand-mishra/career-predictor/internal/types"
)

// PathOrder is the order of the eight path segments in
//
//	GET /prediction/{id}/{major}/{age}/{gender}/{gpa}/{extra_curricular}/{num_programming_languages}/{num_past_internships}
//
// It differs from the column order of the feature table.
var PathOrder = []string{
	types.FieldStudentID,
	types.FieldMajor,
	types.FieldAge,
	types.FieldGender,
	types.FieldGPA,
	types.FieldExtraCurricular,
	types.FieldNumProgrammingLanguages,
	types.FieldNumPastInternships,
}

// FromPath maps ordered path segments onto canonical field names.
// Fewer than eight segments, or an empty one, is a *MissingFieldError.
// The caller is responsible for rejecting more than eight.
func FromPath(segments []string) (map[string]string, error) {
	fields := make(map[string]string, len(PathOrder))
	for i, name := range PathOrder {
		if i >= len(segments) || segments[i] == "" {
			return nil, &MissingFieldError{Detail: MissingFieldDetail, Field: name}
		}
		fields[name] = segments[i]
	}
	return fields, nil
}

// FromBody decodes a display-keyed JSON object:
//
//	{ "Student ID": "1", "Gender": "Female", "Age": "21", "Major": "...",
//	  "GPA": "3.5", "Extra Curricular": "...",
//	  "Num Programming Languages": "3", "Num Past Internships": "1" }
//
// An empty body or a literal null is a *MissingFieldError. Anything that
// is not exactly that shape (unknown keys, non-string values, trailing
// data) is a *SchemaValidationError. Presence of each field is checked
// later by Validate.
func FromBody(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var student *types.Student
	err := dec.Decode(&student)
	if errors.Is(err, io.EOF) {
		return nil, &MissingFieldError{Detail: MissingStudentDetail}
	}
	if err != nil {
		return nil, &SchemaValidationError{Err: fmt.Errorf("decode body: %w", err)}
	}
	if student == nil {
		return nil, &MissingFieldError{Detail: MissingStudentDetail}
	}
	if dec.More() {
		return nil, &SchemaValidationError{Err: errors.New("decode body: unexpected data after student object")}
	}

	return student.Display(), nil
}
