package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
)

type BeliefHandler struct {
	fusion *service.FusionService
}

func NewBeliefHandler(fusion *service.FusionService) *BeliefHandler {
	return &BeliefHandler{fusion: fusion}
}

// Query answers bel and pl for a comma-separated hypotheses query, e.g.
// GET /v1/beliefs?hypotheses=degraded,failed
func (h *BeliefHandler) Query(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("hypotheses")
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "hypotheses query parameter is required")
		return
	}

	result, err := h.fusion.Query(names)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownName):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoFusionYet):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to query beliefs")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
