package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	"github.com/wmhmc/camp-attendance-api/pkg/config"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

// Theme setting keys. The settings table is a flat key/value store owned by
// the presentation layer; the API only persists and validates it.
var themeKeys = []string{"primary", "card", "accent", "bg", "text"}

type settingsRepository interface {
	List(ctx context.Context) ([]models.Setting, error)
	BulkUpsert(ctx context.Context, settings []models.Setting) error
	SeedDefaults(ctx context.Context, settings []models.Setting) error
}

// SettingsService manages the persisted theme configuration.
type SettingsService struct {
	repo      settingsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger}
}

// EnsureDefaults seeds any missing theme keys from the configured defaults.
func (s *SettingsService) EnsureDefaults(ctx context.Context, theme config.ThemeConfig) error {
	defaults := []models.Setting{
		{Key: "primary", Value: theme.Primary},
		{Key: "card", Value: theme.Card},
		{Key: "accent", Value: theme.Accent},
		{Key: "bg", Value: theme.Bg},
		{Key: "text", Value: theme.Text},
	}
	if err := s.repo.SeedDefaults(ctx, defaults); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed theme defaults")
	}
	return nil
}

// Theme returns the persisted theme as a flat key/value map.
func (s *SettingsService) Theme(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	theme := make(map[string]string, len(settings))
	for _, setting := range settings {
		theme[setting.Key] = setting.Value
	}
	return theme, nil
}

// UpdateTheme validates and persists theme color overrides. Only known theme
// keys are accepted, and every value must be a hex color.
func (s *SettingsService) UpdateTheme(ctx context.Context, values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no theme values supplied")
	}

	updates := make([]models.Setting, 0, len(values))
	for key, value := range values {
		if !isThemeKey(key) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown theme key %q", key))
		}
		if err := s.validator.Var(value, "required,hexcolor"); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid color for %q", key))
		}
		updates = append(updates, models.Setting{Key: key, Value: value})
	}

	if err := s.repo.BulkUpsert(ctx, updates); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save theme")
	}
	return s.Theme(ctx)
}

func isThemeKey(key string) bool {
	for _, known := range themeKeys {
		if key == known {
			return true
		}
	}
	return false
}
