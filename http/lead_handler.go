package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quickgfe/domain"
)

type LeadSubmitter interface {
	Submit(ctx context.Context, sub domain.LeadSubmission) (domain.LeadReceipt, error)
}

type LeadHandler struct {
	leads  LeadSubmitter
	logger *slog.Logger
}

func NewLeadHandler(leads LeadSubmitter, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger}
}

type submitError struct {
	Error string `json:"error"`
}

func (h *LeadHandler) Register(r chi.Router) {
	r.Post("/submit", h.HandleSubmit)
}

func (h *LeadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var sub domain.LeadSubmission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, submitError{Error: "invalid request body"})
		return
	}

	receipt, err := h.leads.Submit(ctx, sub)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			first := verr.First()
			writeJSON(w, h.logger, http.StatusBadRequest, submitError{Error: first.Field + " " + first.Message})
			return
		}
		h.logger.ErrorContext(ctx, "lead submission failed", "error", err)
		writeJSON(w, h.logger, http.StatusInternalServerError, submitError{Error: "could not record submission"})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, receipt)
}
