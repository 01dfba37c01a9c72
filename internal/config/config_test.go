package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("STORAGE_DRIVER", "postgres")
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("POPULAR_DEFAULT_COUNT", "5")
	defer os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.StorageDriver != StoragePostgres {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StoragePostgres)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}

	if cfg.PopularDefaultCount != 5 {
		t.Errorf("PopularDefaultCount = %d, want 5", cfg.PopularDefaultCount)
	}

	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q, want %q", cfg.AppPort, "8080")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.StorageDriver != StorageMemory {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StorageMemory)
	}
	if cfg.PopularDefaultCount != 10 {
		t.Errorf("PopularDefaultCount = %d, want 10", cfg.PopularDefaultCount)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Unknown storage driver",
			envVars: map[string]string{
				"STORAGE_DRIVER": "mongo",
			},
		},
		{
			name: "Postgres without DB_PASSWORD",
			envVars: map[string]string{
				"STORAGE_DRIVER": "postgres",
			},
		},
		{
			name: "Zero default popular count",
			envVars: map[string]string{
				"POPULAR_DEFAULT_COUNT": "0",
			},
		},
		{
			name: "Negative rate limit",
			envVars: map[string]string{
				"RATE_LIMIT_PER_IP": "-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:        "production",
				StorageDriver: StoragePostgres,
				DBSSLMode:     "require",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:        "development",
				StorageDriver: StorageMemory,
				DBSSLMode:     "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:        "production",
				StorageDriver: StoragePostgres,
				DBSSLMode:     "disable",
			},
			shouldErr: true,
		},
		{
			name: "Production on memory storage",
			cfg: &Config{
				AppEnv:        "production",
				StorageDriver: StorageMemory,
				DBSSLMode:     "require",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{
		PopularCacheTTLSecs:    30,
		RateLimitWindowSeconds: 60,
		ShutdownTimeoutSeconds: 5,
	}

	if got := cfg.GetPopularCacheTTL(); got != 30*time.Second {
		t.Errorf("GetPopularCacheTTL() = %v, want %v", got, 30*time.Second)
	}
	if got := cfg.GetRateLimitWindow(); got != time.Minute {
		t.Errorf("GetRateLimitWindow() = %v, want %v", got, time.Minute)
	}
	if got := cfg.GetShutdownTimeout(); got != 5*time.Second {
		t.Errorf("GetShutdownTimeout() = %v, want %v", got, 5*time.Second)
	}
}
