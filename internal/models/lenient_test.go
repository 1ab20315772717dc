package models

import (
	"encoding/json"
	"testing"
)

func TestGenerateResumeRequestDropsIllTypedFields(t *testing.T) {
	body := `{
		"title": "My Doc",
		"name": "Jane",
		"keywords": "not-a-list",
		"education": 123,
		"projects": [{"title": "tracker", "tech_stack": "Go", "url": "https://example.com"}]
	}`

	var req GenerateResumeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if req.Title != "My Doc" {
		t.Errorf("Title = %q", req.Title)
	}
	if req.Name != "Jane" {
		t.Errorf("Name = %q", req.Name)
	}
	if req.Keywords != nil {
		t.Errorf("ill-typed keywords kept: %v", req.Keywords)
	}
	if req.Education != nil {
		t.Errorf("ill-typed education kept: %v", req.Education)
	}
	if len(req.Projects) != 1 {
		t.Fatalf("projects = %v", req.Projects)
	}
	if req.Projects[0].Title != "tracker" || req.Projects[0].URL != "https://example.com" {
		t.Errorf("well-typed project fields lost: %+v", req.Projects[0])
	}
	if req.Projects[0].TechStack != nil {
		t.Errorf("ill-typed tech_stack kept: %v", req.Projects[0].TechStack)
	}
}

func TestGeneratePortfolioRequestKeepsWrapperFields(t *testing.T) {
	body := `{"title": "Site", "style_prompt": "dark mode", "name": "Jane"}`

	var req GeneratePortfolioRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if req.Title != "Site" || req.StylePrompt != "dark mode" {
		t.Errorf("wrapper fields = %q / %q", req.Title, req.StylePrompt)
	}
	if req.Name != "Jane" {
		t.Errorf("payload name = %q", req.Name)
	}
}

func TestEducationEntryDropsIllTypedFields(t *testing.T) {
	body := `{"school": "State University", "major": 5, "degree": null}`

	var entry EducationEntry
	if err := json.Unmarshal([]byte(body), &entry); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if entry.School != "State University" {
		t.Errorf("School = %q", entry.School)
	}
	if entry.Major != "" || entry.Degree != "" {
		t.Errorf("ill-typed fields kept: %+v", entry)
	}
}

func TestGenerationPayloadRejectsNonObjectBody(t *testing.T) {
	var p GenerationPayload
	if err := json.Unmarshal([]byte(`[1, 2]`), &p); err == nil {
		t.Error("non-object body should fail decoding")
	}
}

func TestGenerationPayloadRoundTrip(t *testing.T) {
	in := GenerationPayload{
		Name:     "Jane",
		Skills:   []string{"Go"},
		Projects: []ProjectEntry{{Title: "tracker", TechStack: []string{"Go"}}},
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out GenerationPayload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if out.Name != in.Name || len(out.Skills) != 1 || len(out.Projects) != 1 {
		t.Errorf("round trip lost data: %+v", out)
	}
	if out.Projects[0].Title != "tracker" {
		t.Errorf("project = %+v", out.Projects[0])
	}
}
