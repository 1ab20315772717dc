package models

import "time"

// GenerationPayload is the profile-shaped input a generate call runs on.
// It is persisted verbatim on the created document (snapshot copy), so
// later profile edits never alter an already-generated resume or
// portfolio.
type GenerationPayload struct {
	Name        string            `json:"name" bson:"name"`
	Email       string            `json:"email" bson:"email"`
	Phone       string            `json:"phone" bson:"phone"`
	DesiredJob  string            `json:"desired_job" bson:"desired_job"`
	Keywords    []string          `json:"keywords" bson:"keywords"`
	Skills      []string          `json:"skills" bson:"skills"`
	Education   []EducationEntry  `json:"education" bson:"education"`
	Experiences []ExperienceEntry `json:"experiences" bson:"experiences"`
	Projects    []ProjectEntry    `json:"projects" bson:"projects"`
}

// CoverLetter holds the four generated sections, each addressable on its
// own for later field-level edits.
type CoverLetter struct {
	Strengths   string `json:"strengths" bson:"strengths"`
	Growth      string `json:"growth" bson:"growth"`
	Personality string `json:"personality" bson:"personality"`
	Motivation  string `json:"motivation" bson:"motivation"`
}

type Resume struct {
	ID          string            `json:"id" bson:"_id"`
	UserID      string            `json:"user_id" bson:"user_id"`
	Title       string            `json:"title" bson:"title"`
	Payload     GenerationPayload `json:"payload" bson:"payload"`
	CoverLetter CoverLetter       `json:"cover_letter" bson:"cover_letter"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}

// ResumeSummary is the list projection for "my resumes".
type ResumeSummary struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

const DefaultResumeTitle = "My Resume"

type GenerateResumeRequest struct {
	Title string `json:"title"`
	GenerationPayload
}

// UpdateResumeRequest is the allow-list for resume patches. Unknown
// request fields are ignored by decoding, not rejected, so a body
// naming none of these fields is a valid no-op update.
type UpdateResumeRequest struct {
	Title       *string `json:"title"`
	Strengths   *string `json:"strengths"`
	Growth      *string `json:"growth"`
	Personality *string `json:"personality"`
	Motivation  *string `json:"motivation"`
}
