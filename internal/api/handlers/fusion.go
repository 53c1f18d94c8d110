package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/dst"
	"github.com/credalab/credence/internal/service"
)

type FusionHandler struct {
	fusion *service.FusionService
}

func NewFusionHandler(fusion *service.FusionService) *FusionHandler {
	return &FusionHandler{fusion: fusion}
}

func (h *FusionHandler) Run(w http.ResponseWriter, r *http.Request) {
	run, err := h.fusion.Run(r.Context(), domain.TriggerManual)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoEvidence):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, dst.ErrFullContradiction):
			writeError(w, http.StatusConflict, "sources are fully contradictory, check sensor reliability")
		default:
			writeError(w, http.StatusInternalServerError, "fusion failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func (h *FusionHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.fusion.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list fusion runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
