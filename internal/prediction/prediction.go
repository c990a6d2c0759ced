// Package prediction is the request pipeline of the service:
//
//	input adapter → normalizer → validator → predictor
//
// FromPath and FromBody turn a request into raw fields, a normalize.Normalizer
// restores the trained category labels, Validate builds a types.Student and
// the Predictor runs the classifier. Every stage either hands its result to
// the next one or returns a typed error; nothing is retried and nothing is
// kept between requests except the classifier behind the Loader.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/career-predictor/internal/classifier"
	"github.com/aanand-mishra/career-predictor/internal/normalize"
	"github.com/aanand-mishra/career-predictor/internal/types"
)

// Predictor runs the classifier for one validated student.
type Predictor struct {
	loader classifier.Loader
}

// NewPredictor returns a Predictor that obtains its classifier from loader.
func NewPredictor(loader classifier.Loader) *Predictor {
	return &Predictor{loader: loader}
}

// Predict builds the single-row feature table for s and returns the label.
//
// Load failures come back as *classifier.ArtifactLoadError, everything that
// goes wrong during inference as *classifier.InferenceError.
func (p *Predictor) Predict(ctx context.Context, s types.Student) (types.PredictionResult, error) {
	clf, err := p.loader.Load(ctx)
	if err != nil {
		var loadErr *classifier.ArtifactLoadError
		if !errors.As(err, &loadErr) {
			err = &classifier.ArtifactLoadError{Err: err}
		}
		return types.PredictionResult{}, err
	}

	label, err := clf.Predict(classifier.RowFromStudent(s))
	if err != nil {
		var infErr *classifier.InferenceError
		if !errors.As(err, &infErr) {
			err = &classifier.InferenceError{Err: err}
		}
		return types.PredictionResult{}, err
	}

	if label != 0 && label != 1 {
		return types.PredictionResult{}, &classifier.InferenceError{
			Err: fmt.Errorf("label %d is not 0 or 1", label),
		}
	}

	return types.PredictionResult{GoodEmployee: label}, nil
}

// Service wires the pipeline stages together for the two request shapes.
type Service struct {
	normalizer normalize.Normalizer
	predictor  *Predictor
}

// NewService returns a Service. normalizer applies to path requests only;
// nil disables normalization.
func NewService(normalizer normalize.Normalizer, predictor *Predictor) *Service {
	return &Service{normalizer: normalizer, predictor: predictor}
}

// PredictPath handles the eight ordered path segments of
// GET /prediction/{id}/{major}/...
func (s *Service) PredictPath(ctx context.Context, segments []string) (types.PredictionResult, error) {
	fields, err := FromPath(segments)
	if err != nil {
		return types.PredictionResult{}, err
	}

	if s.normalizer != nil {
		fields = s.normalizer.Normalize(fields)
	}

	return s.predict(ctx, fields)
}

// PredictBody handles the JSON body of POST /prediction. Body values are
// expected to already be the trained labels and are not normalized.
func (s *Service) PredictBody(ctx context.Context, body io.Reader) (types.PredictionResult, error) {
	fields, err := FromBody(body)
	if err != nil {
		return types.PredictionResult{}, err
	}

	return s.predict(ctx, fields)
}

func (s *Service) predict(ctx context.Context, fields map[string]string) (types.PredictionResult, error) {
	student, err := Validate(fields)
	if err != nil {
		return types.PredictionResult{}, err
	}

	slog.Debug("running prediction",
		slog.String("student_id", student.StudentID),
		slog.String("major", student.Major),
		slog.String("extra_curricular", student.ExtraCurricular),
	)

	return s.predictor.Predict(ctx, student)
}
