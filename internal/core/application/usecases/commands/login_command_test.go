package commands_test

import (
	"strings"
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewLoginCommand("  courier1 ", "secret123", " Pixel 8 ", "10.0.0.1")
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "courier1", cmd.Handle())
		assert.Equal(t, "secret123", cmd.Secret())
		assert.Equal(t, "Pixel 8", cmd.Device())
		assert.Equal(t, "10.0.0.1", cmd.IP())
	})

	t.Run("secret is kept verbatim", func(t *testing.T) {
		cmd, err := commands.NewLoginCommand("courier1", " pass ", "", "")
		require.NoError(t, err)
		assert.Equal(t, " pass ", cmd.Secret())
	})

	tests := []struct {
		name    string
		handle  string
		secret  string
		device  string
		wantErr error
	}{
		{"empty handle", "  ", "secret123", "", errs.ErrValueIsRequired},
		{"empty secret", "courier1", "", "", errs.ErrValueIsRequired},
		{"short secret", "courier1", "abc", "", errs.ErrValueIsOutOfRange},
		{"long secret", "courier1", strings.Repeat("a", commands.SecretMaxLength+1), "", errs.ErrValueIsOutOfRange},
		{"long device", "courier1", "secret123", strings.Repeat("d", commands.DeviceMaxLength+1), errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewLoginCommand(tt.handle, tt.secret, tt.device, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("zero value is rejected", func(t *testing.T) {
		assert.ErrorIs(t, commands.LoginCommand{}.Validate(), commands.ErrLoginCommandIsNotConstructed)
	})
}
