// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package language

import (
	"context"
	"log/slog"

	"github.com/manovapp/manov/internal/platform/validate"
)

const (
	FieldCode = "code"
	FieldName = "name"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListLanguages(context context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(context)
}

func (service *Service) GetLanguage(context context.Context, code string) (*Language, error) {
	return service.repo.GetLanguageByCode(context, code)
}

// IsActive reports whether a language exists and is active. It backs the
// checker interfaces the content domains declare against this service;
// an unknown code surfaces as NotFound through the repository.
func (service *Service) IsActive(context context.Context, code string) (bool, error) {
	l, err := service.repo.GetLanguageByCode(context, code)
	if err != nil {
		return false, err
	}
	return l.IsActive, nil
}

func (service *Service) CreateLanguage(context context.Context, l *Language) error {
	validator := &validate.Validator{}
	validator.Required(FieldCode, l.Code).MaxLen(FieldCode, l.Code, 16)
	validator.Required(FieldName, l.Name)
	if err := validator.Err(); err != nil {
		return err
	}

	l.IsActive = true
	if err := service.repo.Create(context, l); err != nil {
		return err
	}

	service.logger.Info("language_created", slog.String("code", l.Code))
	return nil
}

func (service *Service) UpdateLanguage(context context.Context, code string, input *Language) error {
	current, err := service.repo.GetLanguageByCode(context, code)
	if err != nil {
		return err
	}

	if input.Name != "" {
		current.Name = input.Name
	}
	if input.NativeName != "" {
		current.NativeName = input.NativeName
	}

	if err := service.repo.Update(context, current); err != nil {
		return err
	}

	service.logger.Info("language_updated", slog.String("code", code))
	return nil
}

// SetActive toggles a language. Deactivation blocks new translation
// overlays only; nothing existing is deleted.
func (service *Service) SetActive(context context.Context, code string, active bool) error {
	current, err := service.repo.GetLanguageByCode(context, code)
	if err != nil {
		return err
	}

	current.IsActive = active
	if err := service.repo.Update(context, current); err != nil {
		return err
	}

	service.logger.Info("language_active_changed",
		slog.String("code", code),
		slog.Bool("active", active),
	)
	return nil
}
