package in

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"retrolog/internal/modules/analytics/dto"
	analyticsin "retrolog/internal/modules/analytics/port/in"
	apperrors "retrolog/internal/platform/errors"
)

// HTTPHandler exposes the analytics usecase as JSON endpoints.
type HTTPHandler struct {
	usecase analyticsin.Usecase
}

func NewHTTPHandler(usecase analyticsin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

// Routes mounts the endpoints on r. Every read accepts user, from, to
// (YYYY-MM-DD) and, where bucketed, granularity.
func (h HTTPHandler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/streaks", h.streaks)
	r.Get("/calendar", h.calendar)
	r.Get("/charts", h.charts)
	r.Get("/worklog-stats", h.workLogStats)
	r.Get("/patterns", h.patterns)
	r.Get("/recommendations", h.recommendations)
	r.Get("/insights", h.listInsights)
	r.Post("/insights/{kind}", h.generateInsight)
	r.Patch("/insights/{id}", h.setInsightActive)
}

func (h HTTPHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Dashboard(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) streaks(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Streaks(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) calendar(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Calendar(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) charts(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Charts(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) workLogStats(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.WorkLogStats(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) patterns(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Patterns(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) recommendations(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.usecase.Recommendations(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

func (h HTTPHandler) listInsights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := dto.ListInsightsInput{
		UserID:     q.Get("user"),
		Type:       q.Get("type"),
		ActiveOnly: q.Get("active") == "true",
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, fmt.Errorf("%w: limit must be a non-negative integer", apperrors.ErrInvalidInput))
			return
		}
		input.Limit = limit
	}
	out, err := h.usecase.ListInsights(r.Context(), input)
	respond(w, http.StatusOK, out, err)
}

// generateInsight persists unless persist=false is given.
func (h HTTPHandler) generateInsight(w http.ResponseWriter, r *http.Request) {
	input, err := rangeInput(r)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	out, err := h.usecase.GenerateInsight(r.Context(), dto.InsightInput{
		RangeInput:      input,
		Kind:            chi.URLParam(r, "kind"),
		Persist:         q.Get("persist") != "false",
		SessionID:       q.Get("session"),
		WithSuggestions: q.Get("suggestions") == "true",
	})
	status := http.StatusCreated
	if q.Get("persist") == "false" {
		status = http.StatusOK
	}
	respond(w, status, out, err)
}

type activeBody struct {
	Active *bool `json:"is_active"`
}

func (h HTTPHandler) setInsightActive(w http.ResponseWriter, r *http.Request) {
	body := activeBody{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Active == nil {
		writeError(w, fmt.Errorf("%w: body must be {\"is_active\": bool}", apperrors.ErrInvalidInput))
		return
	}
	out, err := h.usecase.SetInsightActive(r.Context(), dto.SetInsightActiveInput{ID: chi.URLParam(r, "id"), Active: *body.Active})
	respond(w, http.StatusOK, out, err)
}

func rangeInput(r *http.Request) (dto.RangeInput, error) {
	q := r.URL.Query()
	input := dto.RangeInput{UserID: q.Get("user"), Granularity: q.Get("granularity")}
	var err error
	if input.From, err = queryDate(q.Get("from")); err != nil {
		return dto.RangeInput{}, err
	}
	if input.To, err = queryDate(q.Get("to")); err != nil {
		return dto.RangeInput{}, err
	}
	return input, nil
}

func queryDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, value)
	}
	return day, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, status int, body any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
