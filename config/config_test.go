package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_ADDR", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Store.Driver, DriverSQLite)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("db port = %d", cfg.DB.Port)
	}
	if !cfg.HTTP.Diagnostics {
		t.Error("diagnostics should default to enabled")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Postgres ")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("RESTAURANT_ID", " UeorBo3lcwbczVRiNJz3 ")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ADMIN_CHAT_ID", "12345")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.DB.Port != 6543 {
		t.Errorf("db port = %d", cfg.DB.Port)
	}
	if cfg.RestaurantID != "UeorBo3lcwbczVRiNJz3" {
		t.Errorf("restaurant id = %q", cfg.RestaurantID)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Errorf("cors origins = %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Telegram.AdminChatID != 12345 {
		t.Errorf("admin chat id = %d", cfg.Telegram.AdminChatID)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "cassandra"}},
		{"firestore without project", map[string]string{"STORE_DRIVER": "firestore", "FIREBASE_PROJECT_ID": ""}},
		{"bad port", map[string]string{"DB_PORT": "five"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}
