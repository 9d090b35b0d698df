package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MAX_UPLOAD_SIZE", "GEMINI_API_KEY", "GEMINI_MODEL",
		"UPLOAD_ENDPOINT", "LEADS_ENDPOINT", "FALLBACK_AREA", "POLICY_PATH",
		"DB_TYPE", "DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(10485760), cfg.MaxUploadSize)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "Dubai", cfg.FallbackArea)
	assert.Equal(t, "sqlite", cfg.DB.Type)
	assert.Equal(t, "./dishout.db", cfg.DB.SQLitePath)
}

func TestFromEnvPostgres(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dishout_prod")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Type)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, "app", cfg.DB.User)
	assert.Equal(t, "dishout_prod", cfg.DB.Name)
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE", "lots")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_SIZE", "1024")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_PORT", "not-a-port")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoadPolicyDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)

	assert.Equal(t, "971", policy.Phone.CallingCode)
	assert.Len(t, policy.Trending.Seeds, 6)
	assert.Nil(t, policy.Providers)
}

func TestLoadPolicyOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
phone:
  calling_code: "965"
  mobile_prefix: "5"
  mobile_digits: 8
providers:
  Kuwait:
    - Talabat
    - Deliveroo
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, "965", policy.Phone.CallingCode)
	assert.Equal(t, 8, policy.Phone.MobileDigits)
	assert.Equal(t, []string{"Talabat", "Deliveroo"}, policy.Providers["Kuwait"])
	// Sections absent from the file keep their defaults.
	assert.Len(t, policy.Trending.Seeds, 6)
	assert.NotEmpty(t, policy.Trending.FallbackImage)
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadPolicyMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phone: [not, a, map]"), 0o644))

	_, err := LoadPolicy(path)
	assert.Error(t, err)
}
