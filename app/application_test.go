package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	// Save original environment
	originalEnv := os.Environ()
	defer func() {
		// Restore original environment
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					key := env[:i]
					value := env[i+1:]
					if key != "" {
						_ = os.Setenv(key, value) // Ignore error in cleanup
					}
					break
				}
			}
		}
	}()

	t.Run("InvalidConfig", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("DB_PORT", "99999999"))

		app, err := NewApplication()
		assert.Error(t, err)
		assert.Nil(t, app)
	})

	t.Run("InvalidCacheType", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("CACHE_TYPE", "memcached"))

		app, err := NewApplication()
		assert.Error(t, err)
		assert.Nil(t, app)
	})
}

func TestConfigDisplayer(t *testing.T) {
	t.Run("NewConfigDisplayer", func(t *testing.T) {
		displayer := NewConfigDisplayer()
		assert.NotNil(t, displayer)
	})

	t.Run("MaskString", func(t *testing.T) {
		displayer := NewConfigDisplayer()

		// Test short strings
		assert.Equal(t, "****", displayer.maskString("abc"))
		assert.Equal(t, "****", displayer.maskString("a"))
		assert.Equal(t, "****", displayer.maskString(""))

		// Test longer strings
		masked := displayer.maskString("verylongpassword")
		assert.Contains(t, masked, "*")
		assert.True(t, len(masked) == len("verylongpassword"))

		// Should show first quarter of characters
		longString := "verylongpassword" // 16 chars, should show first 4
		masked = displayer.maskString(longString)
		assert.Equal(t, "very************", masked)
	})

	t.Run("IsSensitive", func(t *testing.T) {
		displayer := NewConfigDisplayer()

		// Test sensitive keys
		assert.True(t, displayer.isSensitive("API_KEY"))
		assert.True(t, displayer.isSensitive("PASSWORD"))
		assert.True(t, displayer.isSensitive("SECRET"))
		assert.True(t, displayer.isSensitive("TOKEN"))
		assert.True(t, displayer.isSensitive("db_password"))
		assert.True(t, displayer.isSensitive("AI_API_KEY"))

		// Test non-sensitive keys
		assert.False(t, displayer.isSensitive("PORT"))
		assert.False(t, displayer.isSensitive("HOST"))
		assert.False(t, displayer.isSensitive("DATABASE"))
	})

	t.Run("PrintAllEnvVars", func(t *testing.T) {
		// Set some test environment variables
		require.NoError(t, os.Setenv("TEST_VAR", "test_value"))
		require.NoError(t, os.Setenv("TEST_PASSWORD", "secret_value"))

		displayer := NewConfigDisplayer()

		// This function prints to log, so we can't easily test output
		// But we can ensure it doesn't panic
		assert.NotPanics(t, func() {
			displayer.PrintAllEnvVars()
		})

		// Clean up
		_ = os.Unsetenv("TEST_VAR")      // Ignore error in cleanup
		_ = os.Unsetenv("TEST_PASSWORD") // Ignore error in cleanup
	})
}

func TestApplicationLifecycle(t *testing.T) {
	t.Run("ShutdownWithNilDB", func(t *testing.T) {
		app := &Application{
			config: nil,
			db:     nil,
		}

		// Should not panic when shutting down with nil DB
		assert.NotPanics(t, func() {
			err := app.Shutdown()
			assert.NoError(t, err)
		})
	})

	t.Run("ConfigGetter", func(t *testing.T) {
		app := &Application{
			config: nil,
		}

		config := app.Config()
		assert.Nil(t, config)
	})
}
