package services

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")

	ErrEntryNotFound = errors.New("profile entry not found")

	ErrResumeNotFound    = errors.New("resume not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrUnauthorized = errors.New("unauthorized to modify this resource")
)
