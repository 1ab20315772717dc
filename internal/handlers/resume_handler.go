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

type ResumeHandler struct {
	resumes    services.ResumeService
	users      services.UserService
	generator  generation.TextGenerator
	genTimeout time.Duration
}

func NewResumeHandler(resumes services.ResumeService, users services.UserService, generator generation.TextGenerator, genTimeout time.Duration) *ResumeHandler {
	return &ResumeHandler{
		resumes:    resumes,
		users:      users,
		generator:  generator,
		genTimeout: genTimeout,
	}
}

// Generate builds the prompt from the submitted payload, calls the
// generation backend, parses the structured sections out of the reply,
// and persists the result under the caller's account.
func (h *ResumeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GenerateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if _, err := h.users.GetByID(r.Context(), userID); err != nil {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		return
	}

	prompt := generation.BuildResumePrompt(req.GenerationPayload)

	ctx, cancel := context.WithTimeout(r.Context(), h.genTimeout)
	defer cancel()

	raw, err := h.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("[GenerateResume] user=%s generation error: %v", userID, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Resume generation failed"))
		return
	}

	letter, err := generation.ParseCoverLetter(raw)
	if err != nil {
		log.Printf("[GenerateResume] user=%s parse error: %v", userID, err)
		writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Resume generation returned an unusable result"))
		return
	}

	resume, err := h.resumes.Create(r.Context(), userID, &req, letter)
	if err != nil {
		log.Printf("[GenerateResume] user=%s save error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save resume"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(resume))
}

func (h *ResumeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.resumes.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[ListResumes] user=%s error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list resumes"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(summaries))
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	resumeID := chi.URLParam(r, "resumeId")

	resume, err := h.resumes.GetByID(r.Context(), resumeID, userID)
	if err != nil {
		h.respondError(w, "GetResume", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resume))
}

func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	resumeID := chi.URLParam(r, "resumeId")

	var req models.UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	resume, err := h.resumes.Update(r.Context(), resumeID, userID, &req)
	if err != nil {
		h.respondError(w, "UpdateResume", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resume))
}

func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	resumeID := chi.URLParam(r, "resumeId")

	if err := h.resumes.Delete(r.Context(), resumeID, userID); err != nil {
		h.respondError(w, "DeleteResume", userID, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Resume deleted"}))
}

func (h *ResumeHandler) respondError(w http.ResponseWriter, tag, userID string, err error) {
	switch {
	case errors.Is(err, services.ErrResumeNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Resume not found"))
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("You do not own this resume"))
	default:
		log.Printf("[%s] user=%s error: %v", tag, userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Something went wrong"))
	}
}
