package testfixtures

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Ascii profile keeps rendered output free of color codes across platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Plain strips ANSI sequences so assertions can match on text alone.
func Plain(s string) string {
	return ansi.Strip(s)
}

// RequireContains fails the test unless the plain text of s contains every substring.
func RequireContains(t *testing.T, s string, substrs ...string) {
	t.Helper()
	plain := Plain(s)
	for _, sub := range substrs {
		if !strings.Contains(plain, sub) {
			t.Fatalf("output missing %q\n\nOutput:\n%s", sub, plain)
		}
	}
}

// RequireNotContains fails the test if the plain text of s contains any substring.
func RequireNotContains(t *testing.T, s string, substrs ...string) {
	t.Helper()
	plain := Plain(s)
	for _, sub := range substrs {
		if strings.Contains(plain, sub) {
			t.Fatalf("output unexpectedly contains %q\n\nOutput:\n%s", sub, plain)
		}
	}
}
