// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, the prediction pipeline, and the classifier can all import
// types without depending on each other.
package types

// Student is the fixed set of attributes the classifier was trained on.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — the DISPLAY name of each field ("Student ID", "GPA" …).
//     These are the exact column names the model was trained with, and the
//     keys clients send in the POST /prediction body. The CANONICAL
//     (snake_case) names live in the Field* constants below.
//
//  2. validate:"..." — rules checked by go-playground/validator.
//     "required" means the field must be present and non-empty. There is no
//     range or enum checking: validation is purely structural.
//
// Every value is a string at the boundary, even the numeric ones; the
// classifier decides how to interpret each column.
type Student struct {
	StudentID               string `json:"Student ID" validate:"required"`
	Gender                  string `json:"Gender" validate:"required"`
	Age                     string `json:"Age" validate:"required"`
	Major                   string `json:"Major" validate:"required"`
	GPA                     string `json:"GPA" validate:"required"`
	ExtraCurricular         string `json:"Extra Curricular" validate:"required"`
	NumProgrammingLanguages string `json:"Num Programming Languages" validate:"required"`
	NumPastInternships      string `json:"Num Past Internships" validate:"required"`
}

// Canonical field names.
const (
	FieldStudentID               = "student_id"
	FieldGender                  = "gender"
	FieldAge                     = "age"
	FieldMajor                   = "major"
	FieldGPA                     = "gpa"
	FieldExtraCurricular         = "extra_curricular"
	FieldNumProgrammingLanguages = "num_programming_languages"
	FieldNumPastInternships      = "num_past_internships"
)

// Column pairs a canonical field name with its display name.
type Column struct {
	Field   string
	Display string
}

// Columns is the column order of the feature table handed to the classifier.
// It matches the field order of Student.
var Columns = []Column{
	{FieldStudentID, "Student ID"},
	{FieldGender, "Gender"},
	{FieldAge, "Age"},
	{FieldMajor, "Major"},
	{FieldGPA, "GPA"},
	{FieldExtraCurricular, "Extra Curricular"},
	{FieldNumProgrammingLanguages, "Num Programming Languages"},
	{FieldNumPastInternships, "Num Past Internships"},
}

// Value returns the value stored for a canonical field name, and false when
// the name is not one of the eight known fields.
func (s Student) Value(field string) (string, bool) {
	switch field {
	case FieldStudentID:
		return s.StudentID, true
	case FieldGender:
		return s.Gender, true
	case FieldAge:
		return s.Age, true
	case FieldMajor:
		return s.Major, true
	case FieldGPA:
		return s.GPA, true
	case FieldExtraCurricular:
		return s.ExtraCurricular, true
	case FieldNumProgrammingLanguages:
		return s.NumProgrammingLanguages, true
	case FieldNumPastInternships:
		return s.NumPastInternships, true
	}
	return "", false
}

// Display returns the student keyed by display name, the same shape the
// model was trained on and the POST body uses.
func (s Student) Display() map[string]string {
	out := make(map[string]string, len(Columns))
	for _, c := range Columns {
		v, _ := s.Value(c.Field)
		out[c.Display] = v
	}
	return out
}

// PredictionResult is the body of a successful prediction response.
//
//	{ "good_employee": 1 }
//
// 1 means the student is predicted to be a good employee, 0 means not.
type PredictionResult struct {
	GoodEmployee int `json:"good_employee"`
}
