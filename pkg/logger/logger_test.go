package logger

import "testing"

func TestSanitizeKVs(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "")

	got := sanitizeKVs([]interface{}{
		"emp_email", "a@gmail.com",
		"emp_pan", "ABCDE1234F",
		"company_name", "Acme",
		"span_id", "abc",
		"emp_account", "123456789",
		"dangling",
	})
	want := []interface{}{
		"emp_email", "[REDACTED]",
		"emp_pan", "[REDACTED]",
		"company_name", "Acme",
		"span_id", "abc",
		"emp_account", "[REDACTED]",
		"dangling",
	}
	if len(got) != len(want) {
		t.Fatalf("len: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSanitizeKVsDisabled(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "off")

	got := sanitizeKVs([]interface{}{"emp_email", "a@gmail.com"})
	if got[1] != "a@gmail.com" {
		t.Fatalf("expected value to pass through, got %v", got[1])
	}
}
