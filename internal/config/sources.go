package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// --------------------------------------------------------------------------
// Source registry — one entry per legacy scrape-table pair
// --------------------------------------------------------------------------

// Source describes one legacy data source: the table prefix it lives under,
// the display name of the owning company, and how its columns map onto the
// portal schema.
type Source struct {
	Prefix      string            `yaml:"prefix"`
	CompanyName string            `yaml:"company_name"`
	FieldMap    map[string]string `yaml:"field_map"` // old column -> new field
}

// ListingsTable returns the legacy listings table name for this source.
func (s Source) ListingsTable() string { return fmt.Sprintf("jobs_%s_listings", s.Prefix) }

// DatesTable returns the legacy scrape-dates table name for this source.
func (s Source) DatesTable() string { return fmt.Sprintf("jobs_%s_dates", s.Prefix) }

// Registry holds every known source keyed by prefix.
type Registry map[string]Source

// Lookup returns the source for a prefix. A missing prefix is a
// configuration error and must be treated as fatal for that source.
func (r Registry) Lookup(prefix string) (Source, error) {
	src, ok := r[prefix]
	if !ok {
		return Source{}, fmt.Errorf("source %q is not configured", prefix)
	}
	return src, nil
}

// Prefixes returns all registered prefixes in stable order.
func (r Registry) Prefixes() []string {
	out := make([]string, 0, len(r))
	for p := range r {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HiddenCompanies lists companies whose migrated jobs are flagged hidden.
// "KarlsStorz" is spelled as it appears in the legacy data, which differs
// from the ks source's display name.
var HiddenCompanies = map[string]bool{
	"Europapark": true,
	"KarlsStorz": true,
	"Schwer":     true,
}

// IsHidden reports whether jobs for the given company must be hidden.
func IsHidden(companyName string) bool { return HiddenCompanies[companyName] }

// DefaultEnabledSources are the prefixes migrated when --sources is not given.
// The remaining registry entries exist for re-runs against the older table
// sets and stay disabled by default.
var DefaultEnabledSources = []string{"kls", "ks"}

// DefaultRegistry contains the built-in mapping for every legacy source.
var DefaultRegistry = Registry{
	"bbraun": {
		Prefix:      "bbraun",
		CompanyName: "BBraun",
		FieldMap: map[string]string{
			"JobID":                       "job_id",
			"Title":                       "title",
			"urlTitle":                    "url_title",
			"Function":                    "function",
			"Level":                       "level",
			"WorkLocation":                "work_location",
			"WorkLocationShort":           "work_location_short",
			"WorkLocationWithCoordinates": "work_location_with_coordinates",
			"CoordinatesPrimary":          "coordinates_primary",
			"Country":                     "country",
			"currency":                    "currency",
			"supportedLocales":            "supported_locales",
			"unifiedUrlTitle":             "unified_url_title",
			"unifiedStandardEnd":          "unified_standard_end",
			"unifiedStandardStart":        "unified_standard_start",
			"DateAdded":                   "date_added",
		},
	},
	"ep": {
		Prefix:      "ep",
		CompanyName: "Europapark",
		FieldMap: map[string]string{
			"URL":            "url",
			"Title":          "title",
			"Function":       "function",
			"WorkLocation":   "work_location",
			"ContractType":   "contract_type",
			"Company":        "department", // company info lands in department
			"ContactPerson":  "contact_person",
			"ContactEmail":   "contact_email",
			"ContactPhone":   "contact_phone",
			"Description":    "description",
			"Offerings":      "offerings",
			"Tasks":          "tasks",
			"Qualifications": "qualifications",
			"DateAdded":      "date_added",
		},
	},
	"kauth": {
		Prefix:      "kauth",
		CompanyName: "Kauth",
		FieldMap: map[string]string{
			"Title":           "title",
			"JobID":           "job_id",
			"URL":             "url",
			"city":            "work_location_short",
			"Contract_Type":   "contract_type",
			"Flexibility":     "flexibility",
			"Work_Location":   "work_location",
			"Job_Level":       "level",
			"ContactPerson":   "contact_person",
			"ContactPosition": "description", // contact position stored in description
			"DateAdded":       "date_added",
		},
	},
	"kls": {
		Prefix:      "kls",
		CompanyName: "KLS",
		FieldMap: map[string]string{
			"Title":          "title",
			"Function":       "function",
			"Level":          "level",
			"WorkLocation":   "work_location",
			"Flexibility":    "flexibility",
			"JobID":          "job_id",
			"ContractType":   "contract_type",
			"ContactPerson":  "contact_person",
			"Offerings":      "offerings",
			"Tasks":          "tasks",
			"Qualifications": "qualifications",
			"DateAdded":      "date_added",
		},
	},
	"ks": {
		Prefix:      "ks",
		CompanyName: "KarlStorz",
		FieldMap: map[string]string{
			"Title":           "title",
			"URL":             "url",
			"Function":        "function",
			"Level":           "level",
			"WorkLocation":    "work_location",
			"Flexibility":     "flexibility",
			"CompanyLocation": "work_location_short",
			"DetailLocation":  "all_locations",
			"JobID":           "job_id",
			"PayRange":        "keywords", // pay range stored in keywords
			"DateAdded":       "date_added",
		},
	},
	"schwer": {
		Prefix:      "schwer",
		CompanyName: "Schwer",
		FieldMap: map[string]string{
			"JobID":        "job_id",
			"Title":        "title",
			"ContractType": "contract_type",
			"Level":        "level",
			"Keywords":     "keywords",
			"Description":  "description",
			"WorkLocation": "work_location",
			"AllLocations": "all_locations",
			"Flexibility":  "flexibility",
			"Department":   "department",
			"Company":      "contact_person", // company info stored in contact_person
			"DateAdded":    "date_added",
		},
	},
	"trelectronic": {
		Prefix:      "trelectronic",
		CompanyName: "TRElectronic",
		FieldMap: map[string]string{
			"Title":           "title",
			"JobID":           "job_id",
			"URL":             "url",
			"city":            "work_location_short",
			"Contract_Type":   "contract_type",
			"Flexibility":     "flexibility",
			"Work_Location":   "work_location",
			"Job_Level":       "level",
			"ContactPerson":   "contact_person",
			"ContactPosition": "description",
			"DateAdded":       "date_added",
		},
	},
}

// --------------------------------------------------------------------------
// YAML registry override
// --------------------------------------------------------------------------

// registryFile is the on-disk shape of a registry override.
type registryFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadRegistry returns the source registry to use for a run. When path is
// empty the built-in registry is returned; otherwise the YAML file at path is
// parsed, validated, and merged over the built-in entries (same prefix wins).
func LoadRegistry(path string) (Registry, error) {
	reg := make(Registry, len(DefaultRegistry))
	for p, s := range DefaultRegistry {
		reg[p] = s
	}
	if path == "" {
		return reg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}
	for _, src := range file.Sources {
		if err := validateSource(src); err != nil {
			return nil, fmt.Errorf("sources file %s: %w", path, err)
		}
		reg[src.Prefix] = src
	}
	return reg, nil
}

func validateSource(src Source) error {
	switch {
	case src.Prefix == "":
		return fmt.Errorf("source with empty prefix")
	case src.CompanyName == "":
		return fmt.Errorf("source %q: company_name is required", src.Prefix)
	case len(src.FieldMap) == 0:
		return fmt.Errorf("source %q: field_map is required", src.Prefix)
	}
	return nil
}
