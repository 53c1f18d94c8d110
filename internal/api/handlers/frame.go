package handlers

import (
	"net/http"

	"github.com/credalab/credence/internal/domain"
)

type FrameHandler struct {
	frame      *domain.Frame
	hypotheses []domain.Hypothesis
}

func NewFrameHandler(frame *domain.Frame, hypotheses []domain.Hypothesis) *FrameHandler {
	return &FrameHandler{frame: frame, hypotheses: hypotheses}
}

type frameResponse struct {
	Size       int                 `json:"size"`
	Hypotheses []domain.Hypothesis `json:"hypotheses"`
}

// Get describes the frame of discernment so clients know which hypothesis
// names evidence and queries may use.
func (h *FrameHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, frameResponse{
		Size:       h.frame.Size(),
		Hypotheses: h.hypotheses,
	})
}
