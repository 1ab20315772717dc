package models

import "time"

// Profile is the single mutable document each user owns. Sub-collection
// entries carry their own id so they can be updated or removed without
// replacing the whole array.
type Profile struct {
	ID           string             `json:"id" bson:"_id"`
	UserID       string             `json:"user_id" bson:"user_id"`
	Name         string             `json:"name" bson:"name"`
	BirthDate    string             `json:"birth_date" bson:"birth_date"`
	Phone        string             `json:"phone" bson:"phone"`
	Address      string             `json:"address" bson:"address"`
	AvatarURL    string             `json:"avatar_url" bson:"avatar_url"`
	Introduction string             `json:"introduction" bson:"introduction"`
	Education    []EducationEntry   `json:"education" bson:"education"`
	Experiences  []ExperienceEntry  `json:"experiences" bson:"experiences"`
	Certificates []CertificateEntry `json:"certificates" bson:"certificates"`
	Projects     []ProjectEntry     `json:"projects" bson:"projects"`
	Skills       []string           `json:"skills" bson:"skills"`
	Tools        []string           `json:"tools" bson:"tools"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`

	// Populated on reads from the owning user document, never stored.
	User *PublicAuthor `json:"user,omitempty" bson:"-"`
}

type EducationEntry struct {
	ID        string `json:"id" bson:"id"`
	School    string `json:"school" bson:"school"`
	Major     string `json:"major" bson:"major"`
	Degree    string `json:"degree" bson:"degree"`
	StartDate string `json:"start_date" bson:"start_date"`
	EndDate   string `json:"end_date" bson:"end_date"`
}

type ExperienceEntry struct {
	ID          string `json:"id" bson:"id"`
	Company     string `json:"company" bson:"company"`
	Position    string `json:"position" bson:"position"`
	Description string `json:"description" bson:"description"`
	StartDate   string `json:"start_date" bson:"start_date"`
	EndDate     string `json:"end_date" bson:"end_date"`
}

type CertificateEntry struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Issuer   string `json:"issuer" bson:"issuer"`
	IssuedAt string `json:"issued_at" bson:"issued_at"`
}

type ProjectEntry struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	TechStack   []string `json:"tech_stack" bson:"tech_stack"`
	URL         string   `json:"url" bson:"url"`
	StartDate   string   `json:"start_date" bson:"start_date"`
	EndDate     string   `json:"end_date" bson:"end_date"`
}

// PatchProfileRequest carries the fixed allow-list of top-level profile
// fields. Nil pointers leave the stored value untouched.
type PatchProfileRequest struct {
	Name         *string `json:"name"`
	BirthDate    *string `json:"birth_date"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	AvatarURL    *string `json:"avatar_url"`
	Introduction *string `json:"introduction"`
}

// Empty reports whether the patch names no field at all.
func (r *PatchProfileRequest) Empty() bool {
	return r.Name == nil && r.BirthDate == nil && r.Phone == nil &&
		r.Address == nil && r.AvatarURL == nil && r.Introduction == nil
}

type UpdateEducationRequest struct {
	School    *string `json:"school"`
	Major     *string `json:"major"`
	Degree    *string `json:"degree"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type UpdateExperienceRequest struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type UpdateCertificateRequest struct {
	Name     *string `json:"name"`
	Issuer   *string `json:"issuer"`
	IssuedAt *string `json:"issued_at"`
}

type UpdateProjectRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	TechStack   *[]string `json:"tech_stack"`
	URL         *string   `json:"url"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
}

// StringListRequest is the body for skills/tools add, remove and replace.
type StringListRequest struct {
	Values []string `json:"values"`
}
