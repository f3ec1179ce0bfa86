package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eugenenazirov/license-counter/internal/installation"
	"github.com/eugenenazirov/license-counter/internal/report"
	"github.com/eugenenazirov/license-counter/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const defaultMaxReportBytes = 64 << 20

// Analyser counts the licenses required by a report.
type Analyser interface {
	Analyse(ctx context.Context, r io.Reader, filter installation.Filter) (report.Result, error)
}

// Handler wires the report analyser and storage dependencies into HTTP handlers.
type Handler struct {
	analyser Analyser
	storage  storage.Storage

	clock          func() time.Time
	maxReportBytes int64

	mu                     sync.RWMutex
	applicationIDUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxReportBytes limits the size of uploaded reports. Non-positive values keep the default.
func WithMaxReportBytes(limit int64) HandlerOption {
	return func(h *Handler) {
		if limit > 0 {
			h.maxReportBytes = limit
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(analyser Analyser, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		analyser:       analyser,
		storage:        store,
		maxReportBytes: defaultMaxReportBytes,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.applicationIDUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	_ = r
	id, err := h.storage.GetApplicationID()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := applicationResponse{
		ApplicationID: id,
		UpdatedAt:     h.currentApplicationIDUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.ApplicationID == nil {
		writeError(w, http.StatusBadRequest, "Invalid application", "applicationId is required")
		return
	}

	if err := h.storage.SetApplicationID(*req.ApplicationID); err != nil {
		if errors.Is(err, storage.ErrInvalidApplicationID) {
			writeError(w, http.StatusBadRequest, "Invalid application", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markApplicationIDUpdated()

	id, err := h.storage.GetApplicationID()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := applicationResponse{
		ApplicationID: id,
		UpdatedAt:     h.currentApplicationIDUpdatedAt(),
		Message:       "Application updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCountLicenses(w http.ResponseWriter, r *http.Request) {
	applicationID, err := h.resolveApplicationID(r)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidApplicationID) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	body := bufio.NewReader(http.MaxBytesReader(w, r.Body, h.maxReportBytes))
	if _, err := body.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Invalid request", "report body must not be empty",
				"Send the installation report as CSV in the request body")
			return
		}
		writeReportReadError(w, err)
		return
	}

	start := time.Now()
	result, err := h.analyser.Analyse(r.Context(), body, installation.NewApplicationFilter(applicationID))
	elapsed := time.Since(start)
	if err != nil {
		writeReportReadError(w, err)
		return
	}

	observeReport(result)

	conflicts := result.Conflicts
	if conflicts == nil {
		conflicts = []report.Conflict{}
	}

	resp := countResponse{
		ApplicationID:     applicationID,
		Licenses:          result.Licenses,
		Records:           result.Records,
		Skipped:           result.Skipped,
		Users:             result.Users,
		Conflicts:         conflicts,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveApplicationID prefers the applicationId query parameter over the stored value.
func (h *Handler) resolveApplicationID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("applicationId"))
	if raw == "" {
		return h.storage.GetApplicationID()
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", storage.ErrInvalidApplicationID, raw)
	}
	if err := storage.ValidateApplicationID(id); err != nil {
		return 0, err
	}
	return id, nil
}

func (h *Handler) currentApplicationIDUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.applicationIDUpdatedAt
}

func (h *Handler) markApplicationIDUpdated() {
	h.mu.Lock()
	h.applicationIDUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type applicationRequest struct {
	ApplicationID *int `json:"applicationId"`
}

type applicationResponse struct {
	ApplicationID int       `json:"applicationId"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Message       string    `json:"message,omitempty"`
}

type countResponse struct {
	ApplicationID     int               `json:"applicationId"`
	Licenses          int               `json:"licenses"`
	Records           int               `json:"records"`
	Skipped           int               `json:"skipped"`
	Users             int               `json:"users"`
	Conflicts         []report.Conflict `json:"conflicts"`
	CalculationTimeMs int64             `json:"calculationTimeMs"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func writeReportReadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Report too large",
			fmt.Sprintf("reports are limited to %d bytes", tooLarge.Limit))
		return
	}
	writeInternalError(w, err)
}
