package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidatorValid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		data map[string]any
	}{
		{"empty", nil},
		{"preact", map[string]any{"targetLibrary": "preact"}},
		{"full", map[string]any{
			"targetLibrary":     "inferno",
			"factoryExpression": "Inferno",
			"pragmaExpression":  "Inferno.createElement",
			"isDefaultImport":   true,
			"include":           []any{"**/*.svg"},
			"exclude":           []any{"**/raw/**"},
			"clean":             "command",
			"cleanCommand":      []any{"svgo", "-i", "-", "-o", "-"},
			"log":               map[string]any{"timestamps": false},
		}},
		{"legacy keys", map[string]any{"jsx": "preact", "default": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(tt.data))
		})
	}
}

func TestValidatorInvalid(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{"unknown key", map[string]any{"library": "preact"}, "library"},
		{"wrong type", map[string]any{"targetLibrary": 5}, "targetLibrary"},
		{"empty library", map[string]any{"targetLibrary": ""}, "targetLibrary"},
		{"bad clean mode", map[string]any{"clean": "fast"}, "clean"},
		{"empty clean command", map[string]any{"cleanCommand": []any{}}, "cleanCommand"},
		{"command without argv", map[string]any{"clean": "command"}, "cleanCommand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			require.Error(t, err)

			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %T: %v", err, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidatorValidateFile(t *testing.T) {
	v := newValidator(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, data, 0o644))
	assert.NoError(t, v.ValidateFile(good))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("clean: [\n"), 0o644))
	assert.Error(t, v.ValidateFile(bad))

	assert.ErrorIs(t, v.ValidateFile(filepath.Join(dir, "missing.yaml")), os.ErrNotExist)
}

func TestValidationErrorsError(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{{Field: "clean", Message: "bad"}}
	assert.Contains(t, errs.Error(), "clean: bad")
}
