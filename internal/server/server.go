// Package server exposes the projection over a JSON HTTP API whose query
// string matches the shareable link format.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/runway-forecast/internal/forecast"
	"github.com/iwvelando/runway-forecast/internal/optimizer"
	"github.com/iwvelando/runway-forecast/internal/projection"
	"github.com/iwvelando/runway-forecast/internal/query"
	"github.com/iwvelando/runway-forecast/pkg/constants"
	"github.com/iwvelando/runway-forecast/pkg/datetime"
	"github.com/iwvelando/runway-forecast/pkg/mathutil"
	"github.com/iwvelando/runway-forecast/pkg/optimization"
	"github.com/iwvelando/runway-forecast/pkg/output"
	"go.uber.org/zap"
)

// Request keys outside the share query.
const (
	asOfKey  = "asOf"
	fieldKey = "field"
	floorKey = "floor"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the forecast API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion, now: time.Now}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/forecast", h.handleForecast)
	mux.HandleFunc("/api/optimize", h.handleOptimize)
	mux.HandleFunc("/api/periods", h.handlePeriods)
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)

	return withRequestID(logger, mux)
}

type forecastResponse struct {
	output.Document
	CSV      string `json:"csv"`
	Duration string `json:"duration"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	start := time.Now()

	values, anchor, ok := h.readRequest(w, r, op)
	if !ok {
		return
	}

	result := forecast.GetForecast(h.logger, query.FromValues(values), anchor)
	h.respondForecast(w, r, result, nil, start, op)
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"
	start := time.Now()

	values, anchor, ok := h.readRequest(w, r, op)
	if !ok {
		return
	}

	field, err := optimizer.ParseField(values.Get(fieldKey))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	floor := 0.0
	if raw := values.Get(floorKey); raw != "" {
		parsed, ok := mathutil.ParseNumber(raw)
		if !ok {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", floorKey, raw), op)
			return
		}
		floor = parsed
	}

	req := query.FromValues(values)
	summary, err := optimizer.NewRunner(h.logger, anchor).Run(req, optimizer.Directive{Field: field, Floor: floor})
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("optimizer execution failed: %v", err), op)
		return
	}

	optimized := strconv.FormatFloat(summary.Value, 'f', 2, 64)
	if field == optimizer.FieldRevenue {
		req.Revenue = optimized
	} else {
		req.Expenses = optimized
	}

	result := forecast.GetForecast(h.logger, req, anchor)
	h.respondForecast(w, r, result, &summary, start, op)
}

// readRequest collects the projection fields from the query string (GET) or
// a flat JSON object (POST) and resolves the anchor date.
func (h *handler) readRequest(w http.ResponseWriter, r *http.Request, op string) (url.Values, time.Time, bool) {
	var values url.Values
	switch r.Method {
	case http.MethodGet:
		values = r.URL.Query()
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		decoded, err := decodeFields(r)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondError(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
				return nil, time.Time{}, false
			}
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return nil, time.Time{}, false
		}
		values = decoded
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, time.Time{}, false
	}

	anchor, err := datetime.ParseAnchor(values.Get(asOfKey), h.now())
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest,
			fmt.Sprintf("invalid %s date, expected %s", asOfKey, datetime.AnchorDateLayout), op)
		return nil, time.Time{}, false
	}
	return values, anchor, true
}

func (h *handler) respondForecast(w http.ResponseWriter, r *http.Request, result forecast.Forecast, summary *optimization.Summary, start time.Time, op string) {
	elapsed := time.Since(start)

	doc := output.NewDocument(result)
	doc.Optimization = summary

	response := forecastResponse{
		Document: doc,
		CSV:      output.CsvString(result),
		Duration: elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.String("requestID", requestIDFrom(r)),
		zap.Bool("ready", result.Ready),
		zap.String("period", string(result.Period)),
		zap.Int("points", len(result.Points)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handlePeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": projection.DefaultPeriod,
		"periods": projection.Horizons(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   h.now().Format(time.RFC3339),
	})
}

// decodeFields reads a flat JSON object whose values are strings, numbers,
// or null, and returns them as query values.
func decodeFields(r *http.Request) (url.Values, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}

	values := url.Values{}
	for key, raw := range payload {
		value, err := coerceString(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		if raw != nil {
			values.Set(key, value)
		}
	}
	return values, nil
}

func coerceString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("expected string or number, got %T", value)
	}
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("forecast request failed",
		zap.String("op", op),
		zap.String("requestID", requestIDFrom(r)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
