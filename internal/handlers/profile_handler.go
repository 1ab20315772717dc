package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
)

type ProfileHandler struct {
	profiles services.ProfileService
}

func NewProfileHandler(profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	prof, err := h.profiles.GetOrCreate(r.Context(), userID)
	if err != nil {
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.PatchProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Empty() {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("No updatable fields provided"))
		return
	}

	prof, err := h.profiles.PatchBasic(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[PatchProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var entry models.EducationEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.AddEducation(r.Context(), userID, entry)
	if err != nil {
		log.Printf("[AddEducation] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add education"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	var req models.UpdateEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.UpdateEducation(r.Context(), userID, entryID, &req)
	h.respondEntry(w, "UpdateEducation", userID, prof, err)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	prof, err := h.profiles.RemoveEducation(r.Context(), userID, entryID)
	h.respondEntry(w, "RemoveEducation", userID, prof, err)
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var entry models.ExperienceEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.AddExperience(r.Context(), userID, entry)
	if err != nil {
		log.Printf("[AddExperience] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add experience"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	var req models.UpdateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.UpdateExperience(r.Context(), userID, entryID, &req)
	h.respondEntry(w, "UpdateExperience", userID, prof, err)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	prof, err := h.profiles.RemoveExperience(r.Context(), userID, entryID)
	h.respondEntry(w, "RemoveExperience", userID, prof, err)
}

func (h *ProfileHandler) AddCertificate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var entry models.CertificateEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.AddCertificate(r.Context(), userID, entry)
	if err != nil {
		log.Printf("[AddCertificate] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add certificate"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateCertificate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	var req models.UpdateCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.UpdateCertificate(r.Context(), userID, entryID, &req)
	h.respondEntry(w, "UpdateCertificate", userID, prof, err)
}

func (h *ProfileHandler) RemoveCertificate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	prof, err := h.profiles.RemoveCertificate(r.Context(), userID, entryID)
	h.respondEntry(w, "RemoveCertificate", userID, prof, err)
}

func (h *ProfileHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var entry models.ProjectEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.AddProject(r.Context(), userID, entry)
	if err != nil {
		log.Printf("[AddProject] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add project"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := h.profiles.UpdateProject(r.Context(), userID, entryID, &req)
	h.respondEntry(w, "UpdateProject", userID, prof, err)
}

func (h *ProfileHandler) RemoveProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	entryID := chi.URLParam(r, "entryId")

	prof, err := h.profiles.RemoveProject(r.Context(), userID, entryID)
	h.respondEntry(w, "RemoveProject", userID, prof, err)
}

func (h *ProfileHandler) AddSkills(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "AddSkills", h.profiles.AddSkills)
}

func (h *ProfileHandler) RemoveSkills(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "RemoveSkills", h.profiles.RemoveSkills)
}

func (h *ProfileHandler) ReplaceSkills(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "ReplaceSkills", h.profiles.ReplaceSkills)
}

func (h *ProfileHandler) AddTools(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "AddTools", h.profiles.AddTools)
}

func (h *ProfileHandler) RemoveTools(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "RemoveTools", h.profiles.RemoveTools)
}

func (h *ProfileHandler) ReplaceTools(w http.ResponseWriter, r *http.Request) {
	h.mutateSet(w, r, "ReplaceTools", h.profiles.ReplaceTools)
}

func (h *ProfileHandler) mutateSet(
	w http.ResponseWriter,
	r *http.Request,
	tag string,
	op func(ctx context.Context, userID string, values []string) (*models.Profile, error),
) {
	userID := middleware.GetUserID(r.Context())

	var req models.StringListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	prof, err := op(r.Context(), userID, req.Values)
	if err != nil {
		log.Printf("[%s] user=%s error=%v", tag, userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) respondEntry(w http.ResponseWriter, tag, userID string, prof *models.Profile, err error) {
	if err != nil {
		if err == services.ErrEntryNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Entry not found"))
			return
		}
		log.Printf("[%s] user=%s error=%v", tag, userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}
