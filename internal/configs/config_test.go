package configs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnvFile указывает на несуществующий .env, чтобы тесты не зависели от рабочей директории
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "quickrentals", cfg.AppName)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "3000", cfg.Rest.PORT)
	assert.Equal(t, []string{"*"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Rest.ShutdownTimeout)
	assert.Equal(t, "listings", cfg.Mongo.Collection)
	assert.Equal(t, "listings_exchange", cfg.RabbitMQ.Exchange)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "./airbnb_with_photos.json", cfg.Import.File)
	assert.Equal(t, 100, cfg.Import.BatchSize)
}

func TestLoadConfig_RequiredVariables(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "mongodb without uri", env: map[string]string{"STORAGE_DRIVER": "mongodb", "MONGODB_URI": ""}},
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""}},
		{name: "rabbitmq without url", env: map[string]string{"STORAGE_DRIVER": "memory", "RABBITMQ_ENABLED": "true", "RABBITMQ_URL": ""}},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "cassandra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(noEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ParsesValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MongoDB")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "airbnb")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("IMPORT_BATCH_SIZE", "25")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, DriverMongoDB, cfg.StorageDriver)
	assert.Equal(t, "airbnb", cfg.Mongo.Database)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Rest.ShutdownTimeout)
	assert.Equal(t, 25, cfg.Import.BatchSize)
	assert.False(t, cfg.FluentBit.Enabled, "fluent bit without host is disabled")
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("IMPORT_BATCH_SIZE", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := LoadConfig(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Import.BatchSize)
	assert.Equal(t, 10*time.Second, cfg.Rest.ShutdownTimeout)
}
