package models

import "time"

const (
	PortfolioStatusDraft     = "draft"
	PortfolioStatusPublished = "published"

	DefaultPortfolioTitle = "My Portfolio"
)

type Portfolio struct {
	ID          string            `json:"id" bson:"_id"`
	UserID      string            `json:"user_id" bson:"user_id"`
	Title       string            `json:"title" bson:"title"`
	Payload     GenerationPayload `json:"payload" bson:"payload"`
	StylePrompt string            `json:"style_prompt" bson:"style_prompt"`
	// Content is the generated page markup, treated as an opaque blob.
	Content   string    `json:"content" bson:"content"`
	Status    string    `json:"status" bson:"status"`
	Views     int64     `json:"views" bson:"views"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type PortfolioSummary struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Status    string    `json:"status" bson:"status"`
	Views     int64     `json:"views" bson:"views"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type GeneratePortfolioRequest struct {
	Title       string `json:"title"`
	StylePrompt string `json:"style_prompt"`
	GenerationPayload
}

type UpdatePortfolioRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	StylePrompt *string `json:"style_prompt"`
	Status      *string `json:"status"`
}

func (r *UpdatePortfolioRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != nil && *r.Status != PortfolioStatusDraft && *r.Status != PortfolioStatusPublished {
		errors["status"] = "Status must be draft or published"
	}

	return errors
}
