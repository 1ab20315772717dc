package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
)

type portfolioFixture struct {
	handler    *PortfolioHandler
	portfolios *services.InMemoryPortfolioService
	gen        *fakeGenerator
	userID     string
}

func newPortfolioFixture(t *testing.T) *portfolioFixture {
	t.Helper()
	users := services.NewInMemoryUserService()
	user, err := users.Register(context.Background(), &models.RegisterRequest{
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	portfolios := services.NewInMemoryPortfolioService()
	portfolios.Users = users
	gen := &fakeGenerator{reply: "```\n<html><body>hi</body></html>\n```"}

	return &portfolioFixture{
		handler:    NewPortfolioHandler(portfolios, users, gen, 5*time.Second),
		portfolios: portfolios,
		gen:        gen,
		userID:     user.ID,
	}
}

func (f *portfolioFixture) do(method, path string, body interface{}, h http.HandlerFunc, params map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, f.userID)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGeneratePortfolioStripsFences(t *testing.T) {
	f := newPortfolioFixture(t)

	rec := f.do(http.MethodPost, "/api/portfolio/generate", models.GeneratePortfolioRequest{
		StylePrompt: "dark, minimal",
	}, f.handler.Generate, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.Portfolio `json:"data"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Data.Content != "<html><body>hi</body></html>" {
		t.Errorf("content = %q", resp.Data.Content)
	}
	if resp.Data.Status != models.PortfolioStatusDraft {
		t.Errorf("status = %q", resp.Data.Status)
	}
}

func TestUpdatePortfolioValidatesStatus(t *testing.T) {
	f := newPortfolioFixture(t)
	portfolio, _ := f.portfolios.Create(context.Background(), f.userID, &models.GeneratePortfolioRequest{}, "")
	params := map[string]string{"portfolioId": portfolio.ID}

	bad := "archived"
	rec := f.do(http.MethodPut, "/api/portfolio/"+portfolio.ID, models.UpdatePortfolioRequest{Status: &bad}, f.handler.Update, params)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status code = %d, want 400", rec.Code)
	}

	good := models.PortfolioStatusPublished
	rec = f.do(http.MethodPut, "/api/portfolio/"+portfolio.ID, models.UpdatePortfolioRequest{Status: &good}, f.handler.Update, params)
	if rec.Code != http.StatusOK {
		t.Errorf("valid status code = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestGetPortfolioOwnership(t *testing.T) {
	f := newPortfolioFixture(t)
	foreign, _ := f.portfolios.Create(context.Background(), "someone-else", &models.GeneratePortfolioRequest{}, "")

	rec := f.do(http.MethodGet, "/api/portfolio/"+foreign.ID, nil, f.handler.Get, map[string]string{"portfolioId": foreign.ID})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign portfolio status = %d, want 403", rec.Code)
	}

	rec = f.do(http.MethodGet, "/api/portfolio/missing", nil, f.handler.Get, map[string]string{"portfolioId": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing portfolio status = %d, want 404", rec.Code)
	}
}
