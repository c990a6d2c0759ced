package career

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/career-predictor/internal/classifier"
	"github.com/aanand-mishra/career-predictor/internal/classifier/linear"
	"github.com/aanand-mishra/career-predictor/internal/normalize"
	"github.com/aanand-mishra/career-predictor/internal/prediction"
)

// countingClassifier returns a fixed label and counts calls.
type countingClassifier struct {
	label int
	calls atomic.Int32
}

func (c *countingClassifier) Predict(classifier.Row) (int, error) {
	c.calls.Add(1)
	return c.label, nil
}

func newServer(t *testing.T, loader classifier.Loader) *httptest.Server {
	t.Helper()

	cache := classifier.NewCache(loader)
	svc := prediction.NewService(normalize.Title{}, prediction.NewPredictor(cache))

	router := http.NewServeMux()
	Register(router, svc, cache)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func fixed(clf classifier.Classifier) classifier.Loader {
	return classifier.LoaderFunc(func(context.Context) (classifier.Classifier, error) {
		return clf, nil
	})
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

const validPath = "/prediction/42/computer_science_and_engineering/21/Female/3?5/mens_club_in_cs/3/1"

func TestRoot(t *testing.T) {
	srv := newServer(t, fixed(&countingClassifier{}))

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"Hello": "World"}, decode(t, resp))
}

func TestPredictByPath(t *testing.T) {
	clf := &countingClassifier{label: 1}
	srv := newServer(t, fixed(clf))

	// "?" has to be escaped to stay part of the path.
	resp, err := http.Get(srv.URL + strings.ReplaceAll(validPath, "?", "%3F"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"good_employee": float64(1)}, decode(t, resp))
	assert.Equal(t, int32(1), clf.calls.Load())
}

func TestPredictByPathMissingField(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare route", "/prediction", "Missing student field"},
		{"trailing slash", "/prediction/", "Missing student field"},
		{"seven segments", "/prediction/42/math/21/Female/3.5/chess/3", "Missing student field"},
		{"empty last segment", "/prediction/42/math/21/Female/3.5/chess/3/", "Missing student field"},
		{"nine segments", "/prediction/42/math/21/Female/3.5/chess/3/1/extra", "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := &countingClassifier{}
			srv := newServer(t, fixed(clf))

			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, map[string]any{"detail": tt.want}, decode(t, resp))
			assert.Zero(t, clf.calls.Load())
		})
	}
}

func TestPredictByBody(t *testing.T) {
	clf := &countingClassifier{label: 0}
	srv := newServer(t, fixed(clf))

	body := `{
		"Student ID": "42", "Gender": "Female", "Age": "21",
		"Major": "Computer Science", "GPA": "3.5",
		"Extra Curricular": "Women in CS",
		"Num Programming Languages": "3", "Num Past Internships": "1"
	}`

	resp, err := http.Post(srv.URL+"/prediction", "application/json", strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"good_employee": float64(0)}, decode(t, resp))
}

func TestPredictByBodyErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		detail string
	}{
		{"empty body", "", http.StatusNotFound, "Missing student information"},
		{"null body", "null", http.StatusNotFound, "Missing student information"},
		{
			"missing fields",
			`{"Student ID": "42", "Gender": "Female", "Age": "21", "GPA": "3.5", "Extra Curricular": "Women in CS", "Num Programming Languages": "3"}`,
			http.StatusUnprocessableEntity,
			"field Major is required, field Num Past Internships is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := &countingClassifier{}
			srv := newServer(t, fixed(clf))

			resp, err := http.Post(srv.URL+"/prediction", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, map[string]any{"detail": tt.detail}, decode(t, resp))
			assert.Zero(t, clf.calls.Load())
		})
	}
}

func TestPredictByBodyWrongShape(t *testing.T) {
	srv := newServer(t, fixed(&countingClassifier{}))

	resp, err := http.Post(srv.URL+"/prediction", "application/json", strings.NewReader(`{"Age": 21}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp)
	assert.Contains(t, body["detail"], "decode body")
}

func TestArtifactFailureIsInternalError(t *testing.T) {
	srv := newServer(t, classifier.LoaderFunc(func(context.Context) (classifier.Classifier, error) {
		return nil, &classifier.ArtifactLoadError{Path: "/secret/model.json", Err: errors.New("no such file")}
	}))

	resp, err := http.Get(srv.URL + "/prediction/42/math/21/Female/3.5/chess/3/1")
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{"detail": "Internal Server Error"}, decode(t, resp))
}

func TestHealth(t *testing.T) {
	srv := newServer(t, fixed(&countingClassifier{label: 1}))

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "ok", "model_loaded": false}, decode(t, resp))

	resp, err = http.Get(srv.URL + "/prediction/42/math/21/Female/3.5/chess/3/1")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "ok", "model_loaded": true}, decode(t, resp))
}

// End to end with the artifact shipped in model/.
func TestShippedModelConcurrentRequests(t *testing.T) {
	path := filepath.Join("..", "..", "..", "..", "model", "model.json")
	srv := newServer(t, linear.Loader(path))

	url := srv.URL + strings.ReplaceAll(validPath, "?", "%3F")

	const n = 20
	labels := make([]float64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Get(url)
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]float64
			if assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body)) {
				assert.Len(t, body, 1)
				labels[i] = body["good_employee"]
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		assert.Contains(t, []float64{0, 1}, labels[i])
		assert.Equal(t, labels[0], labels[i])
	}
}
