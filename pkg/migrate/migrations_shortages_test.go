package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShortagesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_shortages.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no shortages migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE shortage_state AS ENUM",
		"CREATE TABLE IF NOT EXISTS shortages",
		"CHECK (shortfall_qty > 0)",
		"CHECK (claimed_qty >= 0)",
		"CHECK (num_nonnulls(product_id, variant_id) = 1)",
		"uq_shortages_active_product",
		"uq_shortages_active_variant",
		"WHERE product_id IS NOT NULL AND state <> 'resolved'",
		"DROP TABLE IF EXISTS shortages",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestNotificationsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_notifications.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no notifications migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS notification_configs",
		"CREATE TABLE IF NOT EXISTS notification_requests",
		"CHECK (frequency IN ('immediate', 'daily', 'weekly'))",
		"CHECK (status IN ('pending', 'sent', 'failed'))",
		"DROP TABLE IF EXISTS notification_requests",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
