package auth_test

import (
	"testing"
	"time"

	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := auth.Config{
			AccessSigningKey:  "access-secret",
			RefreshSigningKey: "refresh-secret",
		}

		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing access key", func(t *testing.T) {
		cfg := auth.Config{
			RefreshSigningKey: "refresh-secret",
		}

		assert.Error(t, cfg.Validate())
	})

	t.Run("missing refresh key", func(t *testing.T) {
		cfg := auth.Config{
			AccessSigningKey: "access-secret",
		}

		assert.Error(t, cfg.Validate())
	})

	t.Run("shared signing key is rejected", func(t *testing.T) {
		cfg := auth.Config{
			AccessSigningKey:  "same-secret",
			RefreshSigningKey: "same-secret",
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := auth.Config{}

	assert.Equal(t, 15*time.Minute, cfg.GetAccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.GetRefreshTTL())
	assert.Equal(t, "safestay", cfg.GetIssuer())
	assert.Equal(t, "user", cfg.GetContextKey())
	assert.Equal(t, "header:Authorization", cfg.GetTokenLookup())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
}

func TestConfigOverrides(t *testing.T) {
	cfg := auth.Config{
		AccessTTL:   time.Minute,
		RefreshTTL:  time.Hour,
		Issuer:      "custom-issuer",
		ContextKey:  "identity",
		TokenLookup: "cookie:jwt",
		AuthScheme:  "Token",
	}

	assert.Equal(t, time.Minute, cfg.GetAccessTTL())
	assert.Equal(t, time.Hour, cfg.GetRefreshTTL())
	assert.Equal(t, "custom-issuer", cfg.GetIssuer())
	assert.Equal(t, "identity", cfg.GetContextKey())
	assert.Equal(t, "cookie:jwt", cfg.GetTokenLookup())
	assert.Equal(t, "Token", cfg.GetAuthScheme())
}
