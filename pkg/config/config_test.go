package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, IdentityLocal, cfg.Identity.Provider)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_StringValues(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("PORT", "8081")
	v.Set("LOW_STOCK_THRESHOLD", "10")
	v.Set("DB_AUTO_MIGRATE", "true")
	v.Set("DB_DRIVER", "MEMORY")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
}

func TestFromViper_LocalIdentityRequiresSecret(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err)
}

func TestFromViper_SupabaseRequiresURLAndKey(t *testing.T) {
	v := viper.New()
	v.Set("IDENTITY_PROVIDER", "supabase")
	_, err := fromViper(v)
	assert.Error(t, err)

	v.Set("SUPABASE_URL", "https://abc.supabase.co/")
	v.Set("SUPABASE_KEY", "anon")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", cfg.Identity.SupabaseURL)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "sparepart", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/sparepart?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestFromViper_PoolSettings(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.DB.Pool.MaxConns)
	assert.Equal(t, time.Hour, cfg.DB.Pool.MaxConnLifetime)
	assert.True(t, cfg.DB.Pool.ForceIPv4)

	v.Set("DB_MAX_CONNS", "3")
	v.Set("DB_MAX_CONN_IDLE_TIME", "90s")
	v.Set("DB_HEALTH_CHECK_PERIOD", "45")
	v.Set("DB_FORCE_IPV4", "false")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, int32(3), cfg.DB.Pool.MaxConns)
	assert.Equal(t, 90*time.Second, cfg.DB.Pool.MaxConnIdleTime)
	assert.Equal(t, 45*time.Second, cfg.DB.Pool.HealthCheckPeriod)
	assert.False(t, cfg.DB.Pool.ForceIPv4)
}
