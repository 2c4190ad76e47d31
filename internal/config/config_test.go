package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{KeyHost, KeyPort, KeyBasePath, KeyRequestTimeout, KeyCatalogDB} {
		t.Setenv(k, "")
	}
	c := FromViper(New())

	assert.Equal(t, "0.0.0.0:5173", c.Addr())
	assert.Equal(t, "/pinyin-game/", c.BasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Empty(t, c.CatalogDB)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(KeyPort, "8080")
	t.Setenv(KeyBasePath, "app")
	t.Setenv(KeyRequestTimeout, "3s")
	t.Setenv(KeyCatalogFile, "catalog.yaml")

	c := FromViper(New())
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "/app/", c.BasePath)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
	assert.Equal(t, "catalog.yaml", c.CatalogFile)
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":               "/",
		"/":              "/",
		"pinyin-game":    "/pinyin-game/",
		"/pinyin-game":   "/pinyin-game/",
		" /a/b/ ":        "/a/b/",
		"//pinyin-game/": "/pinyin-game/",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBasePath(in), "input %q", in)
	}
}

func TestSetupLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetupLogging(Config{LogLevel: "warn"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetupLogging(Config{LogLevel: "nonsense"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestDotEnvOnlyOnLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TTS_VOICE=cmn-CN-Standard-A\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	prev, had := os.LookupEnv(KeyTTSVoice)
	require.NoError(t, os.Unsetenv(KeyTTSVoice))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(KeyTTSVoice, prev)
		} else {
			_ = os.Unsetenv(KeyTTSVoice)
		}
	})

	v := New()
	assert.Equal(t, "cmn-CN-Wavenet-C", FromViper(v).TTSVoice)

	LoadDotEnv()
	assert.Equal(t, "cmn-CN-Standard-A", FromViper(v).TTSVoice)
}
