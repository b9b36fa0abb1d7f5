package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPasswordRule(t *testing.T) {
	type subject struct {
		Password string `validate:"strong_password"`
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes present", "Sup3r$ecret", true},
		{"too short", "Ab1$", false},
		{"missing upper", "sup3r$ecret", false},
		{"missing number", "Super$ecret", false},
		{"missing special", "Sup3rSecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().Struct(subject{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestContentTypeRule(t *testing.T) {
	type subject struct {
		Type string `validate:"content_type"`
	}

	assert.NoError(t, GetValidator().Struct(subject{Type: "AUDIO"}))
	assert.NoError(t, GetValidator().Struct(subject{Type: "QUIZ"}))
	assert.Error(t, GetValidator().Struct(subject{Type: "PODCAST"}))
	assert.Error(t, GetValidator().Struct(subject{Type: "audio"}))
}

func TestFormatValidationErrors(t *testing.T) {
	req := CreateContentRequest{}
	err := GetValidator().Struct(req)
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	require.NotEmpty(t, formatted)
	for _, fe := range formatted {
		assert.NotEmpty(t, fe.Field)
		assert.NotEmpty(t, fe.Message)
	}
}
