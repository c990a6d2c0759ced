// Package linear provides a logistic-regression implementation of the
// classifier.Classifier interface, backed by a JSON artifact on disk.
//
// ARTIFACT FORMAT
// ───────────────
// The training notebook exports the fitted pipeline as JSON:
//
//	{
//	  "name": "good-employee",
//	  "columns": ["Student ID", "Gender", ...],   // training column set
//	  "intercept": -1.5,
//	  "threshold": 0.5,
//	  "features": [
//	    {"column": "Age",   "kind": "numeric", "weight": 0.1, "center": 21, "scale": 2},
//	    {"column": "Major", "kind": "categorical", "weights": {"Computer Science": 0.8}}
//	  ]
//	}
//
// A numeric feature contributes weight*(x-center)/scale. A categorical
// feature contributes the weight of its category, or nothing for a category
// that was not seen in training (one-hot with unknowns ignored). The label
// is 1 when sigmoid(intercept + Σ contributions) reaches the threshold.
//
// Columns listed in "columns" but not used by any feature (the student id)
// must still be present in every row, the same way the training pipeline
// checks feature names.
package linear

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/aanand-mishra/career-predictor/internal/classifier"
)

// Feature kinds.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
)

//go:embed schema.json
var artifactSchema []byte

// Artifact is the decoded JSON file.
type Artifact struct {
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	Columns   []string  `json:"columns"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
	Features  []Feature `json:"features"`
}

// Feature is one term of the linear score.
type Feature struct {
	Column  string             `json:"column"`
	Kind    string             `json:"kind"`
	Weight  float64            `json:"weight,omitempty"`
	Center  float64            `json:"center,omitempty"`
	Scale   float64            `json:"scale,omitempty"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// Model is a loaded artifact. It is immutable and safe for concurrent use.
type Model struct {
	artifact Artifact
}

var _ classifier.Classifier = (*Model)(nil)

// Load reads and validates the artifact at path.
// Every failure is reported as *classifier.ArtifactLoadError.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &classifier.ArtifactLoadError{Path: path, Err: err}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &classifier.ArtifactLoadError{Path: path, Err: err}
	}

	return m, nil
}

// Loader returns a classifier.Loader that reads the artifact at path on
// every call. Wrap it in classifier.NewCache to load it once.
func Loader(path string) classifier.Loader {
	return classifier.LoaderFunc(func(context.Context) (classifier.Classifier, error) {
		return Load(path)
	})
}

// Parse validates data against the artifact schema and decodes it.
func Parse(data []byte) (*Model, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	known := make(map[string]bool, len(a.Columns))
	for _, c := range a.Columns {
		known[c] = true
	}
	for i, f := range a.Features {
		if !known[f.Column] {
			return nil, fmt.Errorf("feature %d uses column %q which is not a training column", i, f.Column)
		}
		if f.Scale == 0 {
			a.Features[i].Scale = 1
		}
	}

	return &Model{artifact: a}, nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(artifactSchema))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://linear-artifact.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
	})
	return schemaCompiled, schemaErr
}

// Name returns the artifact name, for logging.
func (m *Model) Name() string { return m.artifact.Name }

// Probability returns the modelled probability that the row is a 1.
// Failures are reported as *classifier.InferenceError.
func (m *Model) Probability(row classifier.Row) (float64, error) {
	var missing []string
	for _, c := range m.artifact.Columns {
		if _, ok := row.Get(c); !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return 0, &classifier.InferenceError{
			Err: fmt.Errorf("columns missing from row: %s", strings.Join(missing, ", ")),
		}
	}

	z := m.artifact.Intercept
	for _, f := range m.artifact.Features {
		v, _ := row.Get(f.Column)

		switch f.Kind {
		case KindNumeric:
			x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
				return 0, &classifier.InferenceError{
					Err: fmt.Errorf("column %q: %q is not a finite number", f.Column, v),
				}
			}
			z += f.Weight * (x - f.Center) / f.Scale
		case KindCategorical:
			z += f.Weights[v]
		}
	}

	return 1 / (1 + math.Exp(-z)), nil
}

// Predict implements classifier.Classifier.
func (m *Model) Predict(row classifier.Row) (int, error) {
	p, err := m.Probability(row)
	if err != nil {
		return 0, err
	}
	if p >= m.artifact.Threshold {
		return 1, nil
	}
	return 0, nil
}
