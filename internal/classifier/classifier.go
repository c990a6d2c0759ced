// Package classifier defines the Classifier interface — the contract any
// trained model must satisfy to serve predictions — together with the
// single-row feature table it consumes and the errors it reports.
//
// Handlers and the prediction pipeline only know about this interface.
// The concrete model lives in a subpackage (classifier/linear), so a
// different model family can be dropped in by changing one line in main.go,
// and tests can pass a fake.
package classifier

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/career-predictor/internal/types"
)

// Classifier is a trained binary model.
type Classifier interface {
	// Predict returns the predicted label for a single-row feature table.
	// For this service the label is 0 or 1.
	Predict(row Row) (int, error)
}

// Loader produces a ready-to-use Classifier. Implementations may read the
// artifact on every call or cache it.
type Loader interface {
	Load(ctx context.Context) (Classifier, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Classifier, error)

func (f LoaderFunc) Load(ctx context.Context) (Classifier, error) { return f(ctx) }

// Row is a single-row feature table: ordered column names and the value of
// each column. Columns use the display names the model was trained with
// ("Student ID", "GPA" …), not the canonical field names.
type Row struct {
	Columns []string
	Values  []string
}

// RowFromStudent builds the feature table for s in types.Columns order.
func RowFromStudent(s types.Student) Row {
	row := Row{
		Columns: make([]string, 0, len(types.Columns)),
		Values:  make([]string, 0, len(types.Columns)),
	}
	for _, c := range types.Columns {
		v, _ := s.Value(c.Field)
		row.Columns = append(row.Columns, c.Display)
		row.Values = append(row.Values, v)
	}
	return row
}

// Get returns the value of column name and whether the row has it.
func (r Row) Get(name string) (string, bool) {
	for i, c := range r.Columns {
		if c == name {
			return r.Values[i], true
		}
	}
	return "", false
}

// ArtifactLoadError means the classifier artifact could not be read or
// decoded. There is no fallback model.
type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load classifier artifact %q: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// InferenceError means the classifier rejected the row or produced a label
// outside {0, 1}.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
