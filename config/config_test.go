package config

import "testing"

func validConfig() *Config {
	return &Config{
		DBBackend:      BackendMySQL,
		DBHost:         "127.0.0.1",
		DBPassword:     "secret",
		MinioEndpoint:  "minio.local:9000",
		MinioAccessKey: "access",
		MinioSecretKey: "secret",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid mysql", func(c *Config) {}, false},
		{"missing db password", func(c *Config) { c.DBPassword = "" }, true},
		{"missing minio endpoint", func(c *Config) { c.MinioEndpoint = "" }, true},
		{"missing minio credential", func(c *Config) { c.MinioSecretKey = "" }, true},
		{"unknown backend", func(c *Config) { c.DBBackend = "dynamo" }, true},
		{"rest backend missing key", func(c *Config) {
			c.DBBackend = BackendREST
			c.RestURL = "https://project.example.co"
		}, true},
		{"rest backend complete", func(c *Config) {
			c.DBBackend = BackendREST
			c.RestURL = "https://project.example.co"
			c.RestAPIKey = "key"
		}, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error but got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg := Load()
	if cfg.ServerAddr != ":8080" {
		t.Fatalf("unexpected default addr %q", cfg.ServerAddr)
	}
	if cfg.DBBackend != BackendMySQL {
		t.Fatalf("unexpected default backend %q", cfg.DBBackend)
	}
	if cfg.DBPassword != "secret" {
		t.Fatal("expected DB_PASSWORD from environment")
	}
}
