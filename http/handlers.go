package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nutririsk/assessment"
	"nutririsk/predictor"
)

// Assessor runs one assessment; *predictor.Predictor implements it.
type Assessor interface {
	Assess(ctx context.Context, record assessment.Record) (predictor.Assessment, error)
	Available() bool
}

type APIOptions struct {
	ModelType      string
	Logger         *zap.Logger
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// API serves the assessment endpoints.
type API struct {
	assessor  Assessor
	validator *recordValidator
	modelType string
	metrics   http.Handler
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

func NewAPI(assessor Assessor, opts APIOptions) (*API, error) {
	validator, err := newRecordValidator()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		assessor:  assessor,
		validator: validator,
		modelType: opts.ModelType,
		metrics:   opts.MetricsHandler,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}, nil
}

func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)
	mux.HandleFunc("GET /api/form", a.handleForm)
	mux.HandleFunc("POST /api/assess", a.handleAssess)
	mux.HandleFunc("GET /api/ws/assess", a.handleAssessWS)
	if a.metrics != nil {
		mux.Handle("GET /metrics", a.metrics)
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

type formResponse struct {
	Title    string             `json:"title"`
	Fields   []assessment.Field `json:"fields"`
	Features []string           `json:"features"`
	Risks    []riskInfo         `json:"risks"`
}

type riskInfo struct {
	Class    int             `json:"class"`
	Risk     assessment.Risk `json:"risk"`
	Color    string          `json:"color"`
	Severity int             `json:"severity"`
}

type assessResponse struct {
	Risk     assessment.Risk `json:"risk"`
	Color    string          `json:"color"`
	Severity int             `json:"severity"`
	Class    int             `json:"class"`
	Message  string          `json:"message"`
	Features []float64       `json:"features"`
	Cached   bool            `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !a.assessor.Available() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "model_unavailable", Model: a.modelType})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Model: a.modelType})
}

func (a *API) handleForm(w http.ResponseWriter, r *http.Request) {
	resp := formResponse{
		Title:    "Malnutrition Risk Assessment",
		Fields:   assessment.Fields(),
		Features: assessment.FeatureNames(),
	}
	for class, risk := range assessment.Risks() {
		resp.Risks = append(resp.Risks, riskInfo{Class: class, Risk: risk, Color: risk.Color(), Severity: risk.Severity()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAssess(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large", Kind: "invalid_input"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read body: " + err.Error(), Kind: "invalid_input"})
		return
	}

	result, err := a.assess(r.Context(), body)
	if err != nil {
		status, resp := a.errorFor(r.Context(), err)
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, newAssessResponse(result))
}

func (a *API) assess(ctx context.Context, body []byte) (predictor.Assessment, error) {
	if !a.assessor.Available() {
		return predictor.Assessment{}, assessment.ErrModelUnavailable
	}
	record, err := a.validator.Decode(body)
	if err != nil {
		return predictor.Assessment{}, err
	}
	return a.assessor.Assess(ctx, record)
}

func newAssessResponse(result predictor.Assessment) assessResponse {
	return assessResponse{
		Risk:     result.Risk,
		Color:    result.Color,
		Severity: result.Severity,
		Class:    result.Class,
		Message:  result.Risk.Message(),
		Features: result.Features,
		Cached:   result.Cached,
	}
}

// errorFor maps an assessment error kind to a status code and body.
func (a *API) errorFor(ctx context.Context, err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error(), Kind: assessment.ErrorKind(err)}
	var fieldErr *assessment.FieldError
	if errors.As(err, &fieldErr) {
		resp.Field = fieldErr.Field
	}

	switch {
	case errors.Is(err, assessment.ErrInvalidInput):
		return http.StatusBadRequest, resp
	case errors.Is(err, assessment.ErrModelUnavailable):
		return http.StatusServiceUnavailable, resp
	case errors.Is(err, assessment.ErrUnknownClass):
		a.logger.Error("classifier and label table disagree",
			zap.String("request_id", GetRequestID(ctx)), zap.Error(err))
		return http.StatusInternalServerError, resp
	default:
		a.logger.Warn("assessment failed",
			zap.String("request_id", GetRequestID(ctx)), zap.Error(err))
		return http.StatusInternalServerError, resp
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range origins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
}
