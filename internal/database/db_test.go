package database

import (
	"strings"
	"testing"

	"github.com/cinematix/booking-orchestrator/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBPass: "secret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "bookings",
	}
	got := dsn(cfg)
	for _, want := range []string{
		"app:secret@tcp(db.internal:3306)/bookings",
		"parseTime=true",
		"charset=utf8mb4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn() = %q, want it to contain %q", got, want)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "bookings",
	}
	got := dsn(cfg)
	if !strings.HasPrefix(got, "app@tcp(localhost:3306)/bookings") {
		t.Errorf("dsn() = %q, want no password separator for an empty password", got)
	}
}
