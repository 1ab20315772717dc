package models

import (
	"strings"
	"time"
)

type User struct {
	ID                string    `json:"id" bson:"_id"`
	Email             string    `json:"email" bson:"email"`
	PasswordHash      string    `json:"-" bson:"password_hash"`
	Name              string    `json:"name" bson:"name"`
	DesiredJob        string    `json:"desired_job,omitempty" bson:"desired_job,omitempty"`
	ResumeIDs         []string  `json:"resume_ids" bson:"resume_ids"`
	PortfolioIDs      []string  `json:"portfolio_ids" bson:"portfolio_ids"`
	BookmarkedPostIDs []string  `json:"bookmarked_post_ids" bson:"bookmarked_post_ids"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// PublicAuthor is the public-safe projection attached to posts, comments
// and profile reads.
type PublicAuthor struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

func (u *User) Author() PublicAuthor {
	return PublicAuthor{ID: u.ID, Name: u.Name, Email: u.Email}
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User User `json:"user"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		errors["name"] = "Name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}
	if r.ConfirmPassword != r.Password {
		errors["confirmPassword"] = "Passwords do not match"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
