package generation

import (
	"fmt"
	"strings"

	"github.com/careerforge/backend/internal/models"
)

// Placeholder is rendered wherever an optional payload field is missing.
// Fields are never silently omitted from the prompt.
const Placeholder = "(not provided)"

// BuildResumePrompt renders the fixed cover-letter template over the
// payload. Deterministic: the same payload always yields the same prompt.
func BuildResumePrompt(p models.GenerationPayload) string {
	var b strings.Builder

	b.WriteString("You are an expert career assistant writing a cover letter for a job candidate.\n\n")
	b.WriteString("Candidate details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orPlaceholder(p.Name))
	fmt.Fprintf(&b, "- Email: %s\n", orPlaceholder(p.Email))
	fmt.Fprintf(&b, "- Phone: %s\n", orPlaceholder(p.Phone))
	fmt.Fprintf(&b, "- Desired job: %s\n", orPlaceholder(p.DesiredJob))
	fmt.Fprintf(&b, "- Keywords: %s\n", joinOrPlaceholder(p.Keywords))
	fmt.Fprintf(&b, "- Skills: %s\n", joinOrPlaceholder(p.Skills))

	b.WriteString("\nEducation:\n")
	writeEducation(&b, p.Education)
	b.WriteString("\nWork experience:\n")
	writeExperiences(&b, p.Experiences)
	b.WriteString("\nProjects:\n")
	writeProjects(&b, p.Projects)

	b.WriteString(`
Write a four-section cover letter in the candidate's voice based only on
the details above. Do not invent facts that are not provided.

Return your result as a single JSON object in this exact format:

{
  "strengths": string,
  "growth": string,
  "personality": string,
  "motivation": string
}

Return only valid JSON. Do not include explanations, markdown, or text
before or after the JSON.
`)

	return b.String()
}

// BuildPortfolioPrompt renders the portfolio page template. The output is
// requested as a self-contained HTML document and stored opaquely.
func BuildPortfolioPrompt(p models.GenerationPayload, stylePrompt string) string {
	var b strings.Builder

	b.WriteString("You are a web designer generating a personal portfolio page.\n\n")
	b.WriteString("Candidate details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orPlaceholder(p.Name))
	fmt.Fprintf(&b, "- Email: %s\n", orPlaceholder(p.Email))
	fmt.Fprintf(&b, "- Desired job: %s\n", orPlaceholder(p.DesiredJob))
	fmt.Fprintf(&b, "- Keywords: %s\n", joinOrPlaceholder(p.Keywords))
	fmt.Fprintf(&b, "- Skills: %s\n", joinOrPlaceholder(p.Skills))

	b.WriteString("\nEducation:\n")
	writeEducation(&b, p.Education)
	b.WriteString("\nWork experience:\n")
	writeExperiences(&b, p.Experiences)
	b.WriteString("\nProjects:\n")
	writeProjects(&b, p.Projects)

	fmt.Fprintf(&b, "\nStyle direction: %s\n", orPlaceholder(stylePrompt))

	b.WriteString(`
Produce a single self-contained HTML page presenting the candidate's
portfolio in the requested style. Inline all CSS. Use only the details
provided above. Return only the HTML document, with no explanations or
markdown fences around it.
`)

	return b.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func joinOrPlaceholder(values []string) string {
	if len(values) == 0 {
		return Placeholder
	}
	return strings.Join(values, ", ")
}

func writeEducation(b *strings.Builder, entries []models.EducationEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "- %s\n", Placeholder)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "- %s, %s (%s), %s to %s\n",
			orPlaceholder(e.School), orPlaceholder(e.Major), orPlaceholder(e.Degree),
			orPlaceholder(e.StartDate), orPlaceholder(e.EndDate))
	}
}

func writeExperiences(b *strings.Builder, entries []models.ExperienceEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "- %s\n", Placeholder)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "- %s, %s, %s to %s: %s\n",
			orPlaceholder(e.Company), orPlaceholder(e.Position),
			orPlaceholder(e.StartDate), orPlaceholder(e.EndDate),
			orPlaceholder(e.Description))
	}
}

func writeProjects(b *strings.Builder, entries []models.ProjectEntry) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "- %s\n", Placeholder)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "- %s (%s): %s\n",
			orPlaceholder(e.Title), joinOrPlaceholder(e.TechStack),
			orPlaceholder(e.Description))
	}
}
