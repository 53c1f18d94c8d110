package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type WatchHandler struct {
	forecast *service.ForecastService
}

func NewWatchHandler(forecast *service.ForecastService) *WatchHandler {
	return &WatchHandler{forecast: forecast}
}

type createWatchRequest struct {
	Name       string   `json:"name"`
	Hypotheses []string `json:"hypotheses"`
	Horizon    int      `json:"horizon"`
}

func (h *WatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createWatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Horizon < 0 {
		writeError(w, http.StatusBadRequest, "horizon must be non-negative")
		return
	}

	watch, err := h.forecast.CreateWatch(r.Context(), req.Name, req.Hypotheses, req.Horizon)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoHypotheses), errors.Is(err, domain.ErrUnknownName):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrWatchConflict):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create watch")
		}
		return
	}

	writeJSON(w, http.StatusCreated, watch)
}

func (h *WatchHandler) List(w http.ResponseWriter, r *http.Request) {
	watches, err := h.forecast.ListWatches(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list watches")
		return
	}
	writeJSON(w, http.StatusOK, watches)
}

func (h *WatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid watch id")
		return
	}

	if err := h.forecast.DeleteWatch(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrWatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete watch")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid watch id")
		return
	}

	forecast, err := h.forecast.Forecast(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWatchNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoForecastYet):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to forecast")
		}
		return
	}

	writeJSON(w, http.StatusOK, forecast)
}

func (h *WatchHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid watch id")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	similar, err := h.forecast.SimilarRegimes(r.Context(), id, limit)
	if err != nil {
		if errors.Is(err, service.ErrWatchNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to find similar regimes")
		return
	}

	writeJSON(w, http.StatusOK, similar)
}
