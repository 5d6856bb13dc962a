package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quickgfe/domain"
	"quickgfe/service"
)

type ProgramHandler struct {
	defaults *service.Defaults
	logger   *slog.Logger
}

func NewProgramHandler(defaults *service.Defaults, logger *slog.Logger) *ProgramHandler {
	return &ProgramHandler{defaults: defaults, logger: logger}
}

type defaultsResponse struct {
	OK       bool                 `json:"ok"`
	Program  domain.ProgramInfo   `json:"program"`
	Scenario domain.ScenarioInput `json:"scenario"`
}

func (h *ProgramHandler) Register(r chi.Router) {
	r.Get("/programs/{program}/defaults", h.HandleDefaults)
}

// HandleDefaults returns the scenario a form for the program starts from.
func (h *ProgramHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	program := SanitizeProgramSlug(chi.URLParam(r, "program"))

	scenario, err := service.DefaultScenario(h.defaults, program)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	pd, err := h.defaults.For(program)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, defaultsResponse{
		OK:       true,
		Program:  domain.ProgramInfo{Key: program, Label: pd.Label},
		Scenario: scenario,
	})
}

// SanitizeProgramSlug maps a page slug such as "fha-30-year" onto a program.
// Anything unrecognized falls back to conventional.
func SanitizeProgramSlug(slug string) domain.Program {
	s := strings.ToLower(strings.TrimSpace(slug))
	if idx := strings.Index(s, "-"); idx != -1 {
		s = s[:idx]
	}
	if p, err := domain.ParseProgram(s); err == nil {
		return p
	}
	return domain.ProgramConventional
}
