package mcpserver

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateManifest(t *testing.T) {
	data, err := GenerateManifest("1.2.3")
	if err != nil {
		t.Fatalf("GenerateManifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}

	if m.Name != "io.github.dupehound/dupehound" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Version != "1.2.3" {
		t.Errorf("Version = %q", m.Version)
	}
	if !strings.Contains(m.Schema, "2025-10-17") {
		t.Errorf("Schema = %q", m.Schema)
	}
	if len(m.Packages) != 1 {
		t.Fatalf("Packages = %+v", m.Packages)
	}
	pkg := m.Packages[0]
	if pkg.Transport.Type != "stdio" {
		t.Errorf("Transport = %q", pkg.Transport.Type)
	}
	if !strings.HasSuffix(pkg.Identifier, ":1.2.3") {
		t.Errorf("Identifier = %q", pkg.Identifier)
	}
}

func TestGenerateManifestDefaultVersion(t *testing.T) {
	data, err := GenerateManifest("")
	if err != nil {
		t.Fatalf("GenerateManifest: %v", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Version != "0.0.0" {
		t.Errorf("Version = %q, want 0.0.0", m.Version)
	}
}
