package command

import (
	"testing"
)

func TestRegistryGet(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name    string
		cmd     string
		found   bool
		summary string
	}{
		{name: "Known", cmd: "GET", found: true, summary: "Get the value of a key"},
		{name: "Lowercase", cmd: "get", found: true, summary: "Get the value of a key"},
		{name: "Compound", cmd: "XINFO STREAM", found: true},
		{name: "Application", cmd: "SAFEKEYS", found: true},
		{name: "Unknown", cmd: "FROBNICATE", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := reg.Get(tt.cmd)
			if (doc != nil) != tt.found {
				t.Fatalf("Get(%q) = %v, want found=%v", tt.cmd, doc, tt.found)
			}
			if tt.summary != "" && doc.Summary != tt.summary {
				t.Errorf("Summary = %q, want %q", doc.Summary, tt.summary)
			}
		})
	}
}

func TestRegistryGetCommands(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	matches := reg.GetCommands("XREAD")
	if len(matches) != 2 {
		t.Fatalf("GetCommands(XREAD) = %v, want XREAD and XREADGROUP", matches)
	}

	if got := reg.GetCommands("NOPE"); got != nil {
		t.Errorf("GetCommands(NOPE) = %v, want none", got)
	}
}

func TestRegistryIsDangerous(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if !reg.IsDangerous("FLUSHALL") {
		t.Error("FLUSHALL should be dangerous")
	}
	if !reg.IsDangerous("keys") {
		t.Error("keys should be dangerous regardless of case")
	}
	if reg.IsDangerous("GET") {
		t.Error("GET should not be dangerous")
	}
}
