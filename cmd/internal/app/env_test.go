package app

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("PARLEY_TEST_STR", "  hello ")
	if got := EnvString("PARLEY_TEST_STR", "def"); got != "hello" {
		t.Fatalf("EnvString=%q want=%q", got, "hello")
	}
	if got := EnvString("PARLEY_TEST_STR_UNSET", "def"); got != "def" {
		t.Fatalf("EnvString default=%q want=%q", got, "def")
	}
}

func TestEnvIntRejectsNonPositive(t *testing.T) {
	t.Setenv("PARLEY_TEST_INT", "-3")
	if got := EnvInt("PARLEY_TEST_INT", 7); got != 7 {
		t.Fatalf("EnvInt=%d want default 7", got)
	}
	t.Setenv("PARLEY_TEST_INT", "42")
	if got := EnvInt("PARLEY_TEST_INT", 7); got != 42 {
		t.Fatalf("EnvInt=%d want 42", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("PARLEY_TEST_DUR", "250ms")
	if got := EnvDuration("PARLEY_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("EnvDuration=%v want 250ms", got)
	}
	t.Setenv("PARLEY_TEST_DUR", "not-a-duration")
	if got := EnvDuration("PARLEY_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("EnvDuration=%v want default 1s", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.HTTPAddr == "" {
		t.Fatal("HTTPAddr default missing")
	}
	if cfg.DBMaxConns != 5 {
		t.Fatalf("DBMaxConns=%d want 5", cfg.DBMaxConns)
	}
	if cfg.DBSchema != "parley" {
		t.Fatalf("DBSchema=%q want parley", cfg.DBSchema)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("ReadHeaderTimeout=%v want 5s", cfg.ReadHeaderTimeout)
	}
}
