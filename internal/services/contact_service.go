package services

import (
	"context"
	"fmt"
	"strings"

	"ncwcc-portal/internal/models"
	"ncwcc-portal/internal/repositories"
)

type ContactService struct {
	repo *repositories.ContactRepository
}

func NewContactService(repo *repositories.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Submit validates and stores a contact / quote request
func (s *ContactService) Submit(ctx context.Context, sub *models.ContactSubmission) (map[string]string, error) {
	fieldErrors := map[string]string{}

	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	if sub.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if sub.Email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !strings.Contains(sub.Email, "@") {
		fieldErrors["email"] = "Enter a valid email address"
	}
	if sub.Message == "" {
		fieldErrors["message"] = "Message is required"
	}
	if len(sub.Message) > 5000 {
		fieldErrors["message"] = "Message is too long"
	}
	if len(fieldErrors) > 0 {
		return fieldErrors, fmt.Errorf("contact submission failed validation")
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return nil, nil
}
