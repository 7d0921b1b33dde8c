package appconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag string
		want Environment
	}{
		{"development", Development},
		{"", Development},
		{"staging", Development},
		{"test", Test},
		{"TEST", Test},
		{"production", Production},
		{"prod", Production},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvFlagToEnvironment(tt.flag))
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("EUDASH_TEST_STRING", "value")
	t.Setenv("EUDASH_TEST_INT", "42")
	t.Setenv("EUDASH_TEST_BAD_INT", "forty-two")
	t.Setenv("EUDASH_TEST_DURATION", "15s")
	t.Setenv("EUDASH_TEST_BOOL", "true")
	t.Setenv("EUDASH_TEST_BAD_BOOL", "maybe")

	assert.Equal(t, "value", StringEnv("EUDASH_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", StringEnv("EUDASH_TEST_MISSING", "fallback"))
	assert.Equal(t, 42, IntEnv("EUDASH_TEST_INT", 1))
	assert.Equal(t, 1, IntEnv("EUDASH_TEST_BAD_INT", 1))
	assert.Equal(t, 15*time.Second, DurationEnv("EUDASH_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, DurationEnv("EUDASH_TEST_MISSING", time.Second))
	assert.True(t, BoolEnv("EUDASH_TEST_BOOL", false))
	assert.True(t, BoolEnv("EUDASH_TEST_BAD_BOOL", true))
	assert.False(t, BoolEnv("EUDASH_TEST_MISSING", false))
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		err := LoadDotEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
		assert.NoError(t, err)
	})

	t.Run("loads variables from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("EUDASH_DOTENV_PORT=8123\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("EUDASH_DOTENV_PORT") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, 8123, IntEnv("EUDASH_DOTENV_PORT", 0))
	})
}
