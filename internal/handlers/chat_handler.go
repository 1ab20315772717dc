package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/careerforge/backend/internal/generation"
	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
)

// ChatHandler relays a single free-form prompt to the generation
// backend. No conversation state is kept server-side.
type ChatHandler struct {
	generator  generation.TextGenerator
	genTimeout time.Duration
}

func NewChatHandler(generator generation.TextGenerator, genTimeout time.Duration) *ChatHandler {
	return &ChatHandler{generator: generator, genTimeout: genTimeout}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Prompt is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.genTimeout)
	defer cancel()

	reply, err := h.generator.GenerateText(ctx, req.Prompt)
	if err != nil {
		log.Printf("[Chat] user=%s generation error: %v", userID, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Chat service is unavailable"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.ChatResponse{Reply: reply}))
}
