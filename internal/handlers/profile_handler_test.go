package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/careerforge/backend/internal/middleware"
	"github.com/careerforge/backend/internal/models"
	"github.com/careerforge/backend/internal/services"
)

type profileFixture struct {
	handler  *ProfileHandler
	profiles *services.InMemoryProfileService
	userID   string
}

func newProfileFixture() *profileFixture {
	profiles := services.NewInMemoryProfileService()
	return &profileFixture{
		handler:  NewProfileHandler(profiles),
		profiles: profiles,
		userID:   "user-1",
	}
}

func (f *profileFixture) do(method, path, body string, h http.HandlerFunc, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
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

func decodeProfile(t *testing.T, rec *httptest.ResponseRecorder) models.Profile {
	t.Helper()
	var resp struct {
		Data models.Profile `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Data
}

func TestAddSkillsWithoutValues(t *testing.T) {
	f := newProfileFixture()

	rec := f.do(http.MethodPost, "/api/profile/skills", `{}`, f.handler.AddSkills, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if prof := decodeProfile(t, rec); len(prof.Skills) != 0 {
		t.Errorf("skills = %v, want none", prof.Skills)
	}

	rec = f.do(http.MethodDelete, "/api/profile/skills", `{}`, f.handler.RemoveSkills, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("remove without values status = %d", rec.Code)
	}
}

func TestPatchProfileRequiresFields(t *testing.T) {
	f := newProfileFixture()

	rec := f.do(http.MethodPatch, "/api/profile", `{}`, f.handler.PatchProfile, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty patch status = %d, want 400", rec.Code)
	}

	rec = f.do(http.MethodPatch, "/api/profile", `{"name":"Jane"}`, f.handler.PatchProfile, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	if prof := decodeProfile(t, rec); prof.Name != "Jane" {
		t.Errorf("name = %q", prof.Name)
	}
}

func TestAddEducationToleratesIllTypedFields(t *testing.T) {
	f := newProfileFixture()

	rec := f.do(http.MethodPost, "/api/profile/education", `{"school":"State University","major":5}`, f.handler.AddEducation, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	prof := decodeProfile(t, rec)
	if len(prof.Education) != 1 {
		t.Fatalf("education = %v", prof.Education)
	}
	if prof.Education[0].School != "State University" {
		t.Errorf("school = %q", prof.Education[0].School)
	}
	if prof.Education[0].Major != "" {
		t.Errorf("ill-typed major kept: %q", prof.Education[0].Major)
	}
}

func TestRemoveMissingEntry(t *testing.T) {
	f := newProfileFixture()

	rec := f.do(http.MethodPost, "/api/profile/education", `{"school":"State University"}`, f.handler.AddEducation, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d", rec.Code)
	}
	prof := decodeProfile(t, rec)
	entryID := prof.Education[0].ID

	rec = f.do(http.MethodDelete, "/api/profile/education/missing", "", f.handler.RemoveEducation, map[string]string{"entryId": "missing"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing entry status = %d, want 404", rec.Code)
	}

	rec = f.do(http.MethodDelete, "/api/profile/education/"+entryID, "", f.handler.RemoveEducation, map[string]string{"entryId": entryID})
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d", rec.Code)
	}

	// Removing the same entry twice is NotFound, not a silent success.
	rec = f.do(http.MethodDelete, "/api/profile/education/"+entryID, "", f.handler.RemoveEducation, map[string]string{"entryId": entryID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("second remove status = %d, want 404", rec.Code)
	}
}
