package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"quickgfe/domain"
)

// Quoter prices a raw scenario.
type Quoter interface {
	Quote(ctx context.Context, req domain.ScenarioRequest) (domain.QuoteOutput, error)
}

type QuoteHandler struct {
	quoter Quoter
	logger *slog.Logger
}

func NewQuoteHandler(quoter Quoter, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{quoter: quoter, logger: logger}
}

type quoteResponse struct {
	OK    bool               `json:"ok"`
	Quote domain.QuoteOutput `json:"quote"`
}

func (h *QuoteHandler) Register(r chi.Router) {
	r.Post("/quote", h.HandleQuote)
}

// HandleQuote prices the posted scenario. If the client disconnects before
// the quote is ready nothing is written.
func (h *QuoteHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	var req domain.ScenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.DebugContext(ctx, "error decoding quote request", "error", err)
		writeDecodeError(w, h.logger, err)
		return
	}

	out, err := h.quoter.Quote(ctx, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "quote computed",
		"program", out.Program.Key,
		"total_loan", out.Loan.TotalLoan,
		"cash_to_close", out.CashToClose,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, h.logger, http.StatusOK, quoteResponse{OK: true, Quote: out})
}
