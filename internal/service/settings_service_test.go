package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	"github.com/wmhmc/camp-attendance-api/pkg/config"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

type mockSettingsRepo struct {
	values map[string]string
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{values: make(map[string]string)}
}

func (m *mockSettingsRepo) List(ctx context.Context) ([]models.Setting, error) {
	out := make([]models.Setting, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, models.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (m *mockSettingsRepo) BulkUpsert(ctx context.Context, settings []models.Setting) error {
	for _, s := range settings {
		m.values[s.Key] = s.Value
	}
	return nil
}

func (m *mockSettingsRepo) SeedDefaults(ctx context.Context, settings []models.Setting) error {
	for _, s := range settings {
		if _, ok := m.values[s.Key]; !ok {
			m.values[s.Key] = s.Value
		}
	}
	return nil
}

func newSettingsService(repo settingsRepository) *SettingsService {
	return NewSettingsService(repo, validator.New(), zap.NewNop())
}

func TestSettingsServiceEnsureDefaults(t *testing.T) {
	repo := newMockSettingsRepo()
	repo.values["accent"] = "#123456"
	svc := newSettingsService(repo)

	theme := config.ThemeConfig{Primary: "#131321", Card: "#1e1e2f", Accent: "#9b6bff", Bg: "#0f0f13", Text: "#EAEAEA"}
	require.NoError(t, svc.EnsureDefaults(context.Background(), theme))

	assert.Equal(t, "#131321", repo.values["primary"])
	// Existing values are not overwritten by defaults.
	assert.Equal(t, "#123456", repo.values["accent"])
	assert.Len(t, repo.values, 5)
}

func TestSettingsServiceUpdateTheme(t *testing.T) {
	repo := newMockSettingsRepo()
	svc := newSettingsService(repo)

	theme, err := svc.UpdateTheme(context.Background(), map[string]string{"primary": "#101010", "text": "#ffffff"})
	require.NoError(t, err)
	assert.Equal(t, "#101010", theme["primary"])
	assert.Equal(t, "#ffffff", theme["text"])
}

func TestSettingsServiceUpdateThemeRejectsUnknownKey(t *testing.T) {
	svc := newSettingsService(newMockSettingsRepo())

	_, err := svc.UpdateTheme(context.Background(), map[string]string{"sidebar": "#101010"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsServiceUpdateThemeRejectsBadColor(t *testing.T) {
	svc := newSettingsService(newMockSettingsRepo())

	_, err := svc.UpdateTheme(context.Background(), map[string]string{"primary": "blue"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsServiceUpdateThemeRequiresValues(t *testing.T) {
	svc := newSettingsService(newMockSettingsRepo())

	_, err := svc.UpdateTheme(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
