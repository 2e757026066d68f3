package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	src, err := DefaultRegistry.Lookup("kls")
	if err != nil {
		t.Fatalf("Lookup(kls): %v", err)
	}
	if src.CompanyName != "KLS" {
		t.Errorf("CompanyName = %q, want KLS", src.CompanyName)
	}
	if src.FieldMap["JobID"] != "job_id" || src.FieldMap["Title"] != "title" {
		t.Errorf("kls field map = %v", src.FieldMap)
	}

	if _, err := DefaultRegistry.Lookup("nosuch"); err == nil {
		t.Error("Lookup(nosuch): want error for unconfigured source")
	}
}

func TestTableNames(t *testing.T) {
	src := Source{Prefix: "kls"}
	if got := src.ListingsTable(); got != "jobs_kls_listings" {
		t.Errorf("ListingsTable = %q", got)
	}
	if got := src.DatesTable(); got != "jobs_kls_dates" {
		t.Errorf("DatesTable = %q", got)
	}
}

func TestHiddenCompanies(t *testing.T) {
	for name, want := range map[string]bool{
		"Europapark": true,
		"KarlsStorz": true,
		"Schwer":     true,
		"KLS":        false,
		"KarlStorz":  false, // not the spelling in the hidden set
	} {
		if got := IsHidden(name); got != want {
			t.Errorf("IsHidden(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEveryRegistryEntryIsComplete(t *testing.T) {
	for prefix, src := range DefaultRegistry {
		if src.Prefix != prefix {
			t.Errorf("%s: prefix field %q does not match key", prefix, src.Prefix)
		}
		if src.CompanyName == "" {
			t.Errorf("%s: empty company name", prefix)
		}
		if len(src.FieldMap) == 0 {
			t.Errorf("%s: empty field map", prefix)
		}
		if src.FieldMap["DateAdded"] != "date_added" {
			t.Errorf("%s: DateAdded mapping missing", prefix)
		}
	}
}

func TestLoadRegistryWithoutFile(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg) != len(DefaultRegistry) {
		t.Errorf("registry has %d entries, want %d", len(reg), len(DefaultRegistry))
	}
}

func TestLoadRegistryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `
sources:
  - prefix: acme
    company_name: Acme
    field_map:
      Title: title
      DateAdded: date_added
  - prefix: kls
    company_name: KLS Renamed
    field_map:
      Title: title
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	acme, err := reg.Lookup("acme")
	if err != nil {
		t.Fatalf("new source not registered: %v", err)
	}
	if acme.FieldMap["Title"] != "title" {
		t.Errorf("acme field map = %v", acme.FieldMap)
	}

	kls, _ := reg.Lookup("kls")
	if kls.CompanyName != "KLS Renamed" {
		t.Errorf("override did not replace kls entry: %q", kls.CompanyName)
	}

	// Untouched built-ins survive a partial override.
	if _, err := reg.Lookup("ks"); err != nil {
		t.Errorf("built-in ks entry lost: %v", err)
	}
}

func TestLoadRegistryRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty sources", "sources: []"},
		{"missing company", "sources:\n  - prefix: x\n    field_map: {A: a}"},
		{"missing field map", "sources:\n  - prefix: x\n    company_name: X"},
		{"missing prefix", "sources:\n  - company_name: X\n    field_map: {A: a}"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRegistry(path); err == nil {
				t.Error("invalid registry accepted")
			}
		})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := LoadRegistry("/nonexistent/sources.yaml"); err == nil {
		t.Error("want error for missing file")
	}
}
