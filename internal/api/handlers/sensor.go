package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credalab/credence/internal/api/middleware"
	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/store"
)

type SensorHandler struct {
	store domain.SensorStore
}

func NewSensorHandler(store domain.SensorStore) *SensorHandler {
	return &SensorHandler{store: store}
}

type createSensorRequest struct {
	Name        string  `json:"name"`
	Reliability float32 `json:"reliability"`
}

type createSensorResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Reliability float32 `json:"reliability"`
	APIKey      string  `json:"api_key"`
}

func (h *SensorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSensorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Reliability == 0 {
		req.Reliability = 1.0
	}
	if req.Reliability < 0 || req.Reliability > 1 {
		writeError(w, http.StatusBadRequest, "reliability must lie in (0, 1]")
		return
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate API key")
		return
	}

	sensor := &domain.Sensor{
		Name:        req.Name,
		Reliability: req.Reliability,
		APIKeyHash:  middleware.HashAPIKey(apiKey),
	}

	if err := h.store.Create(r.Context(), sensor); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "a sensor with this name already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register sensor")
		return
	}

	// The plaintext key is only ever returned here; we store the hash.
	writeJSON(w, http.StatusCreated, createSensorResponse{
		ID:          sensor.ID.String(),
		Name:        sensor.Name,
		Reliability: sensor.Reliability,
		APIKey:      apiKey,
	})
}

func (h *SensorHandler) List(w http.ResponseWriter, r *http.Request) {
	sensors, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sensors")
		return
	}
	writeJSON(w, http.StatusOK, sensors)
}

func generateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sk_" + hex.EncodeToString(b), nil
}
