package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
	}{
		{"enabled", `{"enable_production_credentials": true}`, true, nil},
		{"disabled", `{"enable_production_credentials": false}`, false, nil},
		{"unknown_fields_ignored", `{"enable_production_credentials": true, "other": 1}`, true, nil},
		{"empty", "", false, ErrNotConfigured},
		{"whitespace", "  \n", false, ErrNotConfigured},
		{"null", "null", false, ErrNotConfigured},
		{"missing_field", `{}`, false, ErrInvalidSettings},
		{"wrong_type", `{"enable_production_credentials": "yes"}`, false, ErrInvalidSettings},
		{"not_an_object", `[true]`, false, ErrInvalidSettings},
		{"malformed", `{"enable_production_credentials": `, false, ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSettings([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.EnableProductionCredentials)
		})
	}
}

func TestErrNotConfiguredMessage(t *testing.T) {
	assert.Equal(t, "please configure the extension", ErrNotConfigured.Error())
}
