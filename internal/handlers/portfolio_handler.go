package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careerforge/backend/internal/generation"
	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
)

type PortfolioHandler struct {
	portfolios services.PortfolioService
	users      services.UserService
	generator  generation.TextGenerator
	genTimeout time.Duration
}

func NewPortfolioHandler(portfolios services.PortfolioService, users services.UserService, generator generation.TextGenerator, genTimeout time.Duration) *PortfolioHandler {
	return &PortfolioHandler{
		portfolios: portfolios,
		users:      users,
		generator:  generator,
		genTimeout: genTimeout,
	}
}

// Generate renders a portfolio page from the submitted payload. Unlike
// resume generation the reply is kept as opaque markup, so a partially
// malformed response still round-trips to the client unchanged.
func (h *PortfolioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GeneratePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		return
	}

	prompt := generation.BuildPortfolioPrompt(req.GenerationPayload, req.StylePrompt)

	ctx, cancel := context.WithTimeout(r.Context(), h.genTimeout)
	defer cancel()

	raw, err := h.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[GeneratePortfolio] user=%s generation error: %v", userID, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Portfolio generation failed"))
		return
	}

	content := generation.StripFences(raw)

	portfolio, err := h.portfolios.Create(r.Context(), userID, &req, content)
	if err != nil {
		log.Printf("[GeneratePortfolio] user=%s save error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save portfolio"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(portfolio))
}

func (h *PortfolioHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.portfolios.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[ListPortfolios] user=%s error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list portfolios"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(summaries))
}

func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	portfolioID := chi.URLParam(r, "portfolioId")

	portfolio, err := h.portfolios.GetByID(r.Context(), portfolioID, userID)
	if err != nil {
		h.respondError(w, "GetPortfolio", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(portfolio))
}

func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	portfolioID := chi.URLParam(r, "portfolioId")

	var req models.UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	portfolio, err := h.portfolios.Update(r.Context(), portfolioID, userID, &req)
	if err != nil {
		h.respondError(w, "UpdatePortfolio", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(portfolio))
}

func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	portfolioID := chi.URLParam(r, "portfolioId")

	if err := h.portfolios.Delete(r.Context(), portfolioID, userID); err != nil {
		h.respondError(w, "DeletePortfolio", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Portfolio deleted"}))
}

func (h *PortfolioHandler) respondError(w http.ResponseWriter, tag, userID string, err error) {
	switch {
	case errors.Is(err, services.ErrPortfolioNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Portfolio not found"))
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("You do not own this portfolio"))
	default:
		log.Printf("[%s] user=%s error: %v", tag, userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Something went wrong"))
	}
}
