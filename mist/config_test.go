package mist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mist-tools/misttopo/mist"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"API_TOKEN", "MIST_API_TOKEN",
		"ORG_ID", "MIST_ORG_ID",
		"HOST", "MIST_API_HOST", "BASE_URL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_TOKEN", "tok-1")
	t.Setenv("ORG_ID", "org-1")
	t.Setenv("HOST", "api.eu.mist.com")

	cfg, err := mist.LoadConfigFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", cfg.Token)
	assert.Equal(t, "org-1", cfg.OrgID)
	assert.Equal(t, "api.eu.mist.com", cfg.Host)
}

func TestLoadConfigFromEnvPrefixedNames(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MIST_API_TOKEN", "tok-2")
	t.Setenv("MIST_ORG_ID", "org-2")

	cfg, err := mist.LoadConfigFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "tok-2", cfg.Token)
	assert.Equal(t, "org-2", cfg.OrgID)
}

func TestLoadConfigFromEnvBaseURLFallback(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("ORG_ID", "org")
	t.Setenv("BASE_URL", "https://api.ac2.mist.com/")

	cfg, err := mist.LoadConfigFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, "api.ac2.mist.com", cfg.Host)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	clearConfigEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "API_TOKEN=file-token\nORG_ID=file-org\nHOST=api.mist.com\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := mist.LoadConfigFromEnv(envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "file-org", cfg.OrgID)
}

func TestLoadConfigFromEnvMissingFileIsIgnored(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("ORG_ID", "org")

	cfg, err := mist.LoadConfigFromEnv(filepath.Join(t.TempDir(), "no-such.env"))
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Token)
}

func TestLoadConfigFromEnvMissingCredentials(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_TOKEN", "tok")

	_, err := mist.LoadConfigFromEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "organization id")

	clearConfigEnv(t)
	t.Setenv("ORG_ID", "org")

	_, err = mist.LoadConfigFromEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API token")
}

func TestLoadConfigFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"token":"json-token","org_id":"json-org","host":"api.mist.com","max_retries":5}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := mist.LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.Token)
	assert.Equal(t, "json-org", cfg.OrgID)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoadConfigFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "token: yaml-token\norg_id: yaml-org\nrate_limit_per_minute: 120\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := mist.LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml-token", cfg.Token)
	assert.Equal(t, "yaml-org", cfg.OrgID)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
}

func TestLoadConfigFromFileErrors(t *testing.T) {
	t.Parallel()

	_, err := mist.LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = mist.LoadConfigFromFile(bad)
	assert.Error(t, err)

	incomplete := filepath.Join(t.TempDir(), "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`{"token":"t"}`), 0o600))
	_, err = mist.LoadConfigFromFile(incomplete)
	assert.Error(t, err)
}
