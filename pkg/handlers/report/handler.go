package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/report-flatten/pkg/models/api"
	"github.com/de-tools/report-flatten/pkg/models/domain"
	"github.com/de-tools/report-flatten/pkg/services/flatten"
	"github.com/de-tools/report-flatten/pkg/services/response"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes = 32 << 20 // 32 MiB
)

type Flattener interface {
	FlattenAll(ctx context.Context, reports []domain.Report, delimiter string) ([]string, error)
}

type Handler struct {
	flattener        Flattener
	defaultDelimiter string
}

func NewHandler(flattener Flattener, defaultDelimiter string) *Handler {
	return &Handler{
		flattener:        flattener,
		defaultDelimiter: defaultDelimiter,
	}
}

// FlattenReports returns every report of the posted response as delimited text
func (h *Handler) FlattenReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	delimiter, ok := h.delimiter(w, r)
	if !ok {
		return
	}
	resp, ok := h.decode(w, r)
	if !ok {
		return
	}

	reports, ok := h.flatten(w, r, resp.Reports, delimiter)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(api.FlattenResponse{Delimiter: delimiter, Reports: reports})
	if err != nil {
		logger.Error().
			Err(err).
			Int("reports", len(reports)).
			Msg("failed to encode flattened reports")
	}
}

// FlattenReport returns a single report of the posted response as plain text
func (h *Handler) FlattenReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "report index must be a non-negative integer", http.StatusBadRequest)
		return
	}
	delimiter, ok := h.delimiter(w, r)
	if !ok {
		return
	}
	resp, ok := h.decode(w, r)
	if !ok {
		return
	}
	if index >= len(resp.Reports) {
		http.Error(w, "report index out of range", http.StatusNotFound)
		return
	}

	reports, ok := h.flatten(w, r, resp.Reports[index:index+1], delimiter)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if _, err := w.Write([]byte(reports[0])); err != nil {
		logger.Error().
			Err(err).
			Int("index", index).
			Msg("failed to write flattened report")
	}
}

func (h *Handler) delimiter(w http.ResponseWriter, r *http.Request) (string, bool) {
	query := r.URL.Query()
	if !query.Has("delimiter") {
		return h.defaultDelimiter, true
	}
	delimiter := query.Get("delimiter")
	if delimiter == "" {
		http.Error(w, "delimiter must not be empty", http.StatusBadRequest)
		return "", false
	}
	return delimiter, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*domain.ReportResponse, bool) {
	resp, err := response.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rejecting undecodable report response")
		http.Error(w, "invalid report response body", http.StatusBadRequest)
		return nil, false
	}
	return resp, true
}

func (h *Handler) flatten(
	w http.ResponseWriter,
	r *http.Request,
	reports []domain.Report,
	delimiter string,
) ([]string, bool) {
	logger := zerolog.Ctx(r.Context())

	flat, err := h.flattener.FlattenAll(r.Context(), reports, delimiter)
	switch {
	case errors.Is(err, flatten.ErrMalformedReport):
		logger.Warn().Err(err).Msg("malformed report")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	case err != nil:
		logger.Error().Err(err).Msg("failed to flatten reports")
		http.Error(w, "failed to flatten reports", http.StatusInternalServerError)
		return nil, false
	}

	logger.Debug().Int("reports", len(flat)).Str("delimiter", delimiter).Msg("reports flattened")
	return flat, true
}
