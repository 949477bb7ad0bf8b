package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type input struct {
		Name string `validate:"notblank"`
	}

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain name", "Alice", true},
		{"padded name", "  Alice  ", true},
		{"single character", "a", true},
		{"unicode", "Ünal", true},
		{"empty string", "", false},
		{"spaces only", "   ", false},
		{"tabs and newlines", "\t\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(input{Name: tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterCustomValidators(t *testing.T) {
	t.Run("does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			RegisterCustomValidators()
		})
	})
}
