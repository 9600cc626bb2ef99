package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var keys = []string{
	"APP_PORT", "LOG_LEVEL", "DB_DRIVER", "SQLITE_PATH",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS",
	"REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS",
	"INGEST_CUSTOMERS_FILE", "INGEST_LOANS_FILE",
}

// clearEnv blanks every key for the test; t.Setenv restores the old values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "8000" || c.DBDriver != DriverMySQL || c.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.IdempotencyTTL() != 5*time.Minute {
		t.Fatalf("ttl = %v", c.IdempotencyTTL())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("LOG_LEVEL", "DEBUG")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DBDriver != DriverSQLite || c.SQLitePath != "/tmp/x.db" || c.RedisDB != 3 || c.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.IdempotencyTTL() != time.Minute {
		t.Fatalf("ttl = %v", c.IdempotencyTTL())
	}
}

func TestLoad_BadInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "one")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "REDIS_DB") {
		t.Fatalf("want REDIS_DB error, got %v", err)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range []string{"APP_PORT", "MYSQL_DB"} {
		// godotenv only fills unset variables
		os.Unsetenv(k)
	}
	t.Setenv("MYSQL_HOST", "db.internal")

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nMYSQL_DB=loans\nMYSQL_HOST=ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("APP_PORT")
		os.Unsetenv("MYSQL_DB")
	})

	c, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppPort != "9090" || c.MySQLDB != "loans" {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.MySQLHost != "db.internal" {
		t.Fatalf("environment must win over the file, got %q", c.MySQLHost)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		clearEnv(t)
		c, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return c
	}

	cases := map[string]func(c *Config){
		"no port":        func(c *Config) { c.AppPort = "" },
		"no mysql host":  func(c *Config) { c.MySQLHost = "" },
		"bad mysql port": func(c *Config) { c.MySQLPort = "port" },
		"no sqlite path": func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" },
		"bad driver":     func(c *Config) { c.DBDriver = "postgres" },
		"zero ttl":       func(c *Config) { c.IdempTTLSecs = 0 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d"}
	want := "u:p@tcp(h:3306)/d?parseTime=true&loc=UTC&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
