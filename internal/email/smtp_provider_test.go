package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPProvider_DialerSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "smtp.example.com"
	cfg.FromEmail = "noreply@example.com"

	p := NewSMTPProvider(cfg)
	assert.Equal(t, "smtp.example.com", p.dialer.Host)
	assert.Equal(t, 587, p.dialer.Port)
	assert.False(t, p.dialer.SSL)
	require.NotNil(t, p.dialer.TLSConfig)
	assert.Equal(t, "smtp.example.com", p.dialer.TLSConfig.ServerName)
	assert.NoError(t, p.Validate())

	cfg.Port = 465
	assert.True(t, NewSMTPProvider(cfg).dialer.SSL)
}

func TestSMTPProvider_RejectsIncompleteConfig(t *testing.T) {
	p := NewSMTPProvider(DefaultConfig())
	assert.Error(t, p.Validate(), "sender address is required")

	_, err := p.Send(context.Background(), &Email{To: []Address{{Email: "a@example.com"}}})
	assert.Error(t, err)
}
