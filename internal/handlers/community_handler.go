package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
)

type CommunityHandler struct {
	community services.CommunityService
	users     services.UserService
}

func NewCommunityHandler(community services.CommunityService, users services.UserService) *CommunityHandler {
	return &CommunityHandler{community: community, users: users}
}

func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.community.ListPosts(r.Context())
	if err != nil {
		log.Printf("[ListPosts] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posts"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

// GetPost is a public read; each call counts one view.
func (h *CommunityHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	post, err := h.community.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[GetPost] id=%s error: %v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load post"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	post, err := h.community.CreatePost(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[CreatePost] user=%s error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *CommunityHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	post, err := h.community.UpdatePost(r.Context(), postID, userID, &req)
	if err != nil {
		h.respondPostError(w, "UpdatePost", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *CommunityHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	if err := h.community.DeletePost(r.Context(), postID, userID); err != nil {
		h.respondPostError(w, "DeletePost", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Post deleted"}))
}

func (h *CommunityHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	comments, err := h.community.ListComments(r.Context(), postID)
	if err != nil {
		log.Printf("[ListComments] post=%s error: %v", postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list comments"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(comments))
}

func (h *CommunityHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	comment, err := h.community.CreateComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		log.Printf("[CreateComment] user=%s post=%s error: %v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create comment"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(comment))
}

func (h *CommunityHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	commentID := chi.URLParam(r, "commentId")

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Content is required"))
		return
	}

	comment, err := h.community.UpdateComment(r.Context(), commentID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Comment not found"))
			return
		}
		log.Printf("[UpdateComment] user=%s error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update comment"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(comment))
}

func (h *CommunityHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	commentID := chi.URLParam(r, "commentId")

	if err := h.community.DeleteComment(r.Context(), commentID, userID); err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Comment not found"))
			return
		}
		log.Printf("[DeleteComment] user=%s error: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete comment"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Comment deleted"}))
}

func (h *CommunityHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	result, err := h.community.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		h.respondPostError(w, "ToggleLike", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *CommunityHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	result, err := h.users.ToggleBookmark(r.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[ToggleBookmark] user=%s post=%s error: %v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to toggle bookmark"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *CommunityHandler) respondPostError(w http.ResponseWriter, tag, userID string, err error) {
	if errors.Is(err, services.ErrPostNotFound) {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		return
	}
	log.Printf("[%s] user=%s error: %v", tag, userID, err)
	writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Something went wrong"))
}
