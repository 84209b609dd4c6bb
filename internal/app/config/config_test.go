package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.toml"), []byte(body), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	viper.Reset()
	for _, key := range []string{"CONFIG_NAME", "JWT_SECRET", "DB_HOST", "REDIS_HOST", "MINIO_ENDPOINT", "DISTANCE_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	writeConfig(t, `
[Distance.Table]
"100 main st, levittown, pa" = 12.4
`)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServicePort)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Token)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, "HS256", cfg.JWT.SigningMethod.Alg())

	assert.Equal(t, PricingConfig{
		FreeMiles:         5,
		VehicleMPG:        23,
		GasPricePerGallon: 4,
		TravelMarkup:      1.5,
		LaborRate:         25,
		TaxRate:           0.08,
	}, cfg.Pricing)

	assert.Equal(t, DistanceModeTable, cfg.Distance.Mode)
	assert.Equal(t, FallbackReject, cfg.Distance.Fallback)
	assert.Equal(t, 3*time.Second, cfg.Distance.Timeout)
	assert.Equal(t, 12.4, cfg.Distance.Table["100 main st, levittown, pa"])

	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Minio.Enabled())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "[Storage]\nDriver = \"mongo\"\n"},
		{"postgres without dsn", "[Storage]\nDriver = \"postgres\"\n"},
		{"unknown fallback", "[Distance]\nFallback = \"guess\"\n"},
		{"matrix without endpoint", "[Distance]\nMode = \"matrix\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.body)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_RedisPortMustBeNumeric(t *testing.T) {
	writeConfig(t, "")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "six")

	_, err := NewConfig()
	assert.Error(t, err)
}
