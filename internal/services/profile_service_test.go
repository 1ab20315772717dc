package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/careerforge/backend/internal/models"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc := NewInMemoryProfileService()

	first, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.UserID != "user-1" {
		t.Errorf("UserID = %q", first.UserID)
	}
	if first.Education == nil || first.Skills == nil {
		t.Error("sub-collections should be initialized empty, not nil")
	}

	second, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call created a new profile: %q vs %q", second.ID, first.ID)
	}
}

func TestPatchBasicUpdatesOnlyProvidedFields(t *testing.T) {
	svc := NewInMemoryProfileService()

	name := "Jane"
	phone := "010-1234-5678"
	prof, err := svc.PatchBasic(context.Background(), "user-1", &models.PatchProfileRequest{
		Name:  &name,
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("PatchBasic failed: %v", err)
	}
	if prof.Name != "Jane" || prof.Phone != "010-1234-5678" {
		t.Errorf("patched profile = %+v", prof)
	}

	intro := "hello"
	prof, err = svc.PatchBasic(context.Background(), "user-1", &models.PatchProfileRequest{
		Introduction: &intro,
	})
	if err != nil {
		t.Fatalf("second PatchBasic failed: %v", err)
	}
	if prof.Name != "Jane" {
		t.Errorf("unrelated field reset: Name = %q", prof.Name)
	}
	if prof.Introduction != "hello" {
		t.Errorf("Introduction = %q", prof.Introduction)
	}
}

func TestEducationLifecycle(t *testing.T) {
	svc := NewInMemoryProfileService()

	prof, err := svc.AddEducation(context.Background(), "user-1", models.EducationEntry{
		School: "State University",
		Major:  "CS",
	})
	if err != nil {
		t.Fatalf("AddEducation failed: %v", err)
	}
	if len(prof.Education) != 1 {
		t.Fatalf("len(Education) = %d", len(prof.Education))
	}
	entryID := prof.Education[0].ID
	if entryID == "" {
		t.Fatal("entry was not assigned an id")
	}

	major := "Math"
	prof, err = svc.UpdateEducation(context.Background(), "user-1", entryID, &models.UpdateEducationRequest{Major: &major})
	if err != nil {
		t.Fatalf("UpdateEducation failed: %v", err)
	}
	if prof.Education[0].Major != "Math" {
		t.Errorf("Major = %q", prof.Education[0].Major)
	}
	if prof.Education[0].School != "State University" {
		t.Errorf("School changed on partial update: %q", prof.Education[0].School)
	}

	if _, err := svc.UpdateEducation(context.Background(), "user-1", "no-such-entry", &models.UpdateEducationRequest{Major: &major}); err != ErrEntryNotFound {
		t.Errorf("update of missing entry error = %v, want ErrEntryNotFound", err)
	}

	// Entry ids are scoped per user: another user cannot touch it.
	if _, err := svc.UpdateEducation(context.Background(), "user-2", entryID, &models.UpdateEducationRequest{Major: &major}); err != ErrEntryNotFound {
		t.Errorf("cross-user update error = %v, want ErrEntryNotFound", err)
	}

	prof, err = svc.RemoveEducation(context.Background(), "user-1", entryID)
	if err != nil {
		t.Fatalf("RemoveEducation failed: %v", err)
	}
	if len(prof.Education) != 0 {
		t.Errorf("len(Education) after remove = %d", len(prof.Education))
	}
	if _, err := svc.RemoveEducation(context.Background(), "user-1", entryID); err != ErrEntryNotFound {
		t.Errorf("double remove error = %v, want ErrEntryNotFound", err)
	}
}

func TestProjectTechStackDefaultsEmpty(t *testing.T) {
	svc := NewInMemoryProfileService()

	prof, err := svc.AddProject(context.Background(), "user-1", models.ProjectEntry{Title: "side project"})
	if err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}
	if prof.Projects[0].TechStack == nil {
		t.Error("TechStack should default to an empty slice")
	}

	stack := []string{"Go", "MongoDB"}
	prof, err = svc.UpdateProject(context.Background(), "user-1", prof.Projects[0].ID, &models.UpdateProjectRequest{TechStack: &stack})
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if !reflect.DeepEqual(prof.Projects[0].TechStack, stack) {
		t.Errorf("TechStack = %v", prof.Projects[0].TechStack)
	}
}

func TestSkillSetSemantics(t *testing.T) {
	svc := NewInMemoryProfileService()
	ctx := context.Background()

	prof, err := svc.AddSkills(ctx, "user-1", []string{"Go", "SQL", "Go"})
	if err != nil {
		t.Fatalf("AddSkills failed: %v", err)
	}
	if !reflect.DeepEqual(prof.Skills, []string{"Go", "SQL"}) {
		t.Errorf("Skills after add = %v", prof.Skills)
	}

	// Adding an existing value is a no-op.
	prof, _ = svc.AddSkills(ctx, "user-1", []string{"SQL"})
	if len(prof.Skills) != 2 {
		t.Errorf("duplicate add grew the set: %v", prof.Skills)
	}

	prof, _ = svc.RemoveSkills(ctx, "user-1", []string{"SQL", "not-there"})
	if !reflect.DeepEqual(prof.Skills, []string{"Go"}) {
		t.Errorf("Skills after remove = %v", prof.Skills)
	}

	prof, _ = svc.ReplaceSkills(ctx, "user-1", []string{"Rust"})
	if !reflect.DeepEqual(prof.Skills, []string{"Rust"}) {
		t.Errorf("Skills after replace = %v", prof.Skills)
	}

	// Tools is an independent set.
	prof, _ = svc.AddTools(ctx, "user-1", []string{"Docker"})
	if !reflect.DeepEqual(prof.Tools, []string{"Docker"}) || !reflect.DeepEqual(prof.Skills, []string{"Rust"}) {
		t.Errorf("Tools/Skills cross-talk: tools=%v skills=%v", prof.Tools, prof.Skills)
	}
}
