package services

import (
	"context"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/planner"
)

type themeServiceImpl struct {
	store *planner.Store
}

// NewThemeService creates a new theme service
func NewThemeService(store *planner.Store) ThemeService {
	return &themeServiceImpl{store: store}
}

func (s *themeServiceImpl) Get() domain.Theme {
	return s.store.Theme()
}

func (s *themeServiceImpl) Set(ctx context.Context, name string) (domain.Theme, error) {
	theme, ok := domain.ParseTheme(name)
	if !ok {
		return "", apperrors.NewInvalidInputError("theme", name, "must be light, dark or midnight")
	}
	if err := s.store.SetTheme(ctx, theme); err != nil {
		return "", err
	}
	return theme, nil
}
