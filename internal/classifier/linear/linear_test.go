package linear

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/career-predictor/internal/classifier"
	"github.com/aanand-mishra/career-predictor/internal/types"
)

const testArtifact = `{
  "name": "test",
  "columns": ["Student ID", "Major", "GPA"],
  "intercept": 0,
  "threshold": 0.5,
  "features": [
    {"column": "Major", "kind": "categorical", "weights": {"Computer Science": 2, "English": -2}},
    {"column": "GPA", "kind": "numeric", "weight": 1, "center": 3}
  ]
}`

func row(values map[string]string) classifier.Row {
	var r classifier.Row
	for _, c := range []string{"Student ID", "Major", "GPA"} {
		if v, ok := values[c]; ok {
			r.Columns = append(r.Columns, c)
			r.Values = append(r.Values, v)
		}
	}
	return r
}

func TestPredict(t *testing.T) {
	m, err := Parse([]byte(testArtifact))
	require.NoError(t, err)

	tests := []struct {
		name  string
		major string
		gpa   string
		want  int
	}{
		{"strong major", "Computer Science", "3.0", 1},
		{"weak major", "English", "3.0", 0},
		{"unknown major falls back to gpa", "Art History", "3.5", 1},
		{"unknown major low gpa", "Art History", "2.5", 0},
		{"at threshold", "Art History", "3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Predict(row(map[string]string{
				"Student ID": "1", "Major": tt.major, "GPA": tt.gpa,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbability(t *testing.T) {
	m, err := Parse([]byte(testArtifact))
	require.NoError(t, err)

	p, err := m.Probability(row(map[string]string{"Student ID": "1", "Major": "Other", "GPA": "3"}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestPredictInferenceErrors(t *testing.T) {
	m, err := Parse([]byte(testArtifact))
	require.NoError(t, err)

	tests := []struct {
		name string
		row  classifier.Row
	}{
		{"missing unused training column", row(map[string]string{"Major": "English", "GPA": "3"})},
		{"missing feature column", row(map[string]string{"Student ID": "1", "Major": "English"})},
		{"non numeric gpa", row(map[string]string{"Student ID": "1", "Major": "English", "GPA": "3?5"})},
		{"nan gpa", row(map[string]string{"Student ID": "1", "Major": "English", "GPA": "NaN"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Predict(tt.row)
			var infErr *classifier.InferenceError
			require.ErrorAs(t, err, &infErr)
		})
	}
}

func TestParseRejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{not json}`},
		{"missing threshold", `{"name":"x","columns":["A"],"intercept":0,"features":[]}`},
		{"threshold out of range", `{"name":"x","columns":["A"],"intercept":0,"threshold":1.5,"features":[]}`},
		{"unknown kind", `{"name":"x","columns":["A"],"intercept":0,"threshold":0.5,"features":[{"column":"A","kind":"tree"}]}`},
		{"numeric without weight", `{"name":"x","columns":["A"],"intercept":0,"threshold":0.5,"features":[{"column":"A","kind":"numeric"}]}`},
		{"categorical without weights", `{"name":"x","columns":["A"],"intercept":0,"threshold":0.5,"features":[{"column":"A","kind":"categorical"}]}`},
		{"feature on unknown column", `{"name":"x","columns":["A"],"intercept":0,"threshold":0.5,"features":[{"column":"B","kind":"numeric","weight":1}]}`},
		{"unknown property", `{"name":"x","columns":["A"],"intercept":0,"threshold":0.5,"features":[],"extra":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte(testArtifact), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", m.Name())

	clf, err := Loader(path).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, clf)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	var loadErr *classifier.ArtifactLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, filepath.Join(dir, "missing.json"), loadErr.Path)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"name":`), 0o600))
	_, err = Load(corrupt)
	require.ErrorAs(t, err, &loadErr)
}

// The artifact shipped with the service must load and score a full student.
func TestShippedArtifact(t *testing.T) {
	m, err := Load(filepath.Join("..", "..", "..", "model", "model.json"))
	require.NoError(t, err)

	strong := classifier.RowFromStudent(types.Student{
		StudentID:               "1",
		Gender:                  "Female",
		Age:                     "22",
		Major:                   "Computer Science and Engineering",
		GPA:                     "3.8",
		ExtraCurricular:         "Women in CS",
		NumProgrammingLanguages: "5",
		NumPastInternships:      "3",
	})
	got, err := m.Predict(strong)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	weak := classifier.RowFromStudent(types.Student{
		StudentID:               "2",
		Gender:                  "Male",
		Age:                     "20",
		Major:                   "English",
		GPA:                     "2.1",
		ExtraCurricular:         "Drama Club",
		NumProgrammingLanguages: "0",
		NumPastInternships:      "0",
	})
	got, err = m.Predict(weak)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}
