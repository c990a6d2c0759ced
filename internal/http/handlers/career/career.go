// Package career contains the HTTP handlers of the service.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Every exported function receives its dependencies once, at route
// registration, and returns the http.HandlerFunc that runs per request:
//
//	router.HandleFunc("POST /prediction", career.ByBody(svc))
//
// The handlers themselves hold no state; everything shared lives behind
// the Predictor passed in.
package career

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/career-predictor/internal/prediction"
	"github.com/aanand-mishra/career-predictor/internal/types"
	"github.com/aanand-mishra/career-predictor/internal/utils/response"
)

// Predictor is the part of prediction.Service the handlers need.
type Predictor interface {
	PredictPath(ctx context.Context, segments []string) (types.PredictionResult, error)
	PredictBody(ctx context.Context, body io.Reader) (types.PredictionResult, error)
}

// ModelState reports whether the classifier is loaded.
type ModelState interface {
	Loaded() bool
}

// maxSegments is the number of attributes carried in the path.
const maxSegments = 8

// Register installs every route of the service on router.
//
// Route table:
//
//	GET  /                     → liveness probe
//	GET  /healthz              → readiness, reports whether the model is loaded
//	GET  /prediction/{...}     → predict from eight path segments
//	POST /prediction           → predict from a JSON body
func Register(router *http.ServeMux, svc Predictor, model ModelState) {
	router.HandleFunc("GET /{$}", Root())
	router.HandleFunc("GET /healthz", Health(model))
	router.HandleFunc("GET /prediction", ByPath(svc))
	router.HandleFunc("GET /prediction/{fields...}", ByPath(svc))
	router.HandleFunc("POST /prediction", ByBody(svc))
}

// Root handles GET / — a liveness probe.
//
//	{ "Hello": "World" }
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
	}
}

// Health handles GET /healthz.
//
//	{ "status": "ok", "model_loaded": true }
func Health(model ModelState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"model_loaded": model.Loaded(),
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ByPath handles
//
//	GET /prediction/{id}/{major}/{age}/{gender}/{gpa}/{extra_curricular}/{num_programming_languages}/{num_past_internships}
//
// The route is registered as GET /prediction/{fields...} (and bare
// GET /prediction) so that a short path reaches this handler and gets the
// missing-field answer instead of the router's plain 404.
//
// Success response (200 OK):
//
//	{ "good_employee": 1 }
//
// Error responses:
//
//	404 Not Found    — a segment is missing: { "detail": "Missing student field" }
//	404 Not Found    — more than eight segments
//	422 Unprocessable — the segments do not form a valid student
//	500 Internal     — the model could not be loaded or failed
//
// ─────────────────────────────────────────────────────────────────────────────
func ByPath(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var segments []string
		if rest := r.PathValue("fields"); rest != "" {
			segments = strings.Split(rest, "/")
		}

		if len(segments) > maxSegments {
			response.WriteJSON(w, http.StatusNotFound, response.Detail("Not Found"))
			return
		}

		slog.Info("predicting from path", slog.Int("segments", len(segments)))

		result, err := svc.PredictPath(r.Context(), segments)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, result)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ByBody handles POST /prediction.
//
// Request body (JSON) — display names as keys, every value a string:
//
//	{
//	  "Student ID": "42", "Gender": "Female", "Age": "21",
//	  "Major": "Computer Science", "GPA": "3.5",
//	  "Extra Curricular": "Women in CS",
//	  "Num Programming Languages": "3", "Num Past Internships": "1"
//	}
//
// Success response (200 OK):
//
//	{ "good_employee": 0 }
//
// Error responses:
//
//	404 Not Found    — empty or null body: { "detail": "Missing student information" }
//	422 Unprocessable — unknown keys, wrong types, or missing fields
//	500 Internal     — the model could not be loaded or failed
//
// ─────────────────────────────────────────────────────────────────────────────
func ByBody(svc Predictor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("predicting from body")

		result, err := svc.PredictBody(r.Context(), r.Body)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, result)
	}
}

// writeError maps pipeline errors onto status codes. Internal failures are
// logged with their cause and answered with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var missing *prediction.MissingFieldError
	var schemaErr *prediction.SchemaValidationError

	switch {
	case errors.As(err, &missing):
		response.WriteJSON(w, http.StatusNotFound, response.Detail(missing.Detail))

	case errors.As(err, &schemaErr):
		if len(schemaErr.Fields) > 0 {
			response.WriteJSON(w, http.StatusUnprocessableEntity,
				response.ValidationError(schemaErr.Fields))
			return
		}
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.GeneralError(schemaErr))

	default:
		slog.Error("prediction failed", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.Detail(http.StatusText(http.StatusInternalServerError)))
	}
}
