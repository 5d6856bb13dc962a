package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quickgfe/domain"
	"quickgfe/service"
)

type RateComparisonHandler struct {
	service *service.RateComparisonService
	logger  *slog.Logger
}

func NewRateComparisonHandler(service *service.RateComparisonService, logger *slog.Logger) *RateComparisonHandler {
	return &RateComparisonHandler{service: service, logger: logger}
}

func (h *RateComparisonHandler) Register(r chi.Router) {
	r.Post("/rates/compare", h.CompareRates)
}

func (h *RateComparisonHandler) CompareRates(w http.ResponseWriter, r *http.Request) {
	var input domain.RateComparisonInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.logger.DebugContext(r.Context(), "error decoding rate comparison request", "error", err)
		writeDecodeError(w, h.logger, err)
		return
	}

	result, err := h.service.Compare(input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
