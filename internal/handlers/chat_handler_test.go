package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
)

func chatRequest(t *testing.T, handler *ChatHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, "user-1"))
	rec := httptest.NewRecorder()
	handler.Send(rec, req)
	return rec
}

func TestChatRelaysPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "hello back"}
	handler := NewChatHandler(gen, 5*time.Second)

	rec := chatRequest(t, handler, models.ChatRequest{Prompt: "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(gen.prompts) != 1 || gen.prompts[0] != "hello" {
		t.Errorf("prompts = %v", gen.prompts)
	}

	var resp struct {
		Data models.ChatResponse `json:"data"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Data.Reply != "hello back" {
		t.Errorf("reply = %q", resp.Data.Reply)
	}
}

func TestChatRejectsEmptyPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "unused"}
	handler := NewChatHandler(gen, 5*time.Second)

	rec := chatRequest(t, handler, models.ChatRequest{Prompt: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(gen.prompts) != 0 {
		t.Error("generator called for an empty prompt")
	}
}

func TestChatUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	handler := NewChatHandler(gen, 5*time.Second)

	rec := chatRequest(t, handler, models.ChatRequest{Prompt: "hello"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
