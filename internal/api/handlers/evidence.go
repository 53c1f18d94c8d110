package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credalab/credence/internal/api/middleware"
	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
)

type EvidenceHandler struct {
	evidence *service.EvidenceService
}

func NewEvidenceHandler(evidence *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{evidence: evidence}
}

type submitEvidenceRequest struct {
	Observations []domain.Observation `json:"observations"`
}

func (h *EvidenceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sensor := middleware.SensorFromContext(r.Context())
	if sensor == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req submitEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.evidence.Submit(sensor, req.Observations)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoObservations),
			errors.Is(err, service.ErrBadMass),
			errors.Is(err, service.ErrMassOverflow),
			errors.Is(err, domain.ErrNoHypotheses),
			errors.Is(err, domain.ErrUnknownName):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to accept evidence")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, report)
}

func (h *EvidenceHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.evidence.Current())
}
