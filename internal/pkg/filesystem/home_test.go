package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/analyst")

	tests := map[string]string{
		"":                      "",
		"~":                     "/home/analyst",
		"~/logs":                "/home/analyst/logs",
		"results/./logs":        filepath.Join("results", "logs"),
		"/var/lib/investigator": "/var/lib/investigator",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppDir(t *testing.T) {
	t.Setenv("HOME", "/home/analyst")
	if got := AppDir("sessions.json"); got != "/home/analyst/.investigator/sessions.json" {
		t.Errorf("AppDir() = %q", got)
	}
}
