package registry

import "github.com/mcm-labs/mcm/internal/jsondoc"

// Root holds the default top-level keys of the aggregate manifest.
type Root struct {
	Name             string
	Description      string
	MinimumStability string
	PreferStable     bool
}

// DefaultRoot is used when no other defaults are configured.
var DefaultRoot = Root{
	Name:             "mcm/base",
	Description:      "MCM root composer package.",
	MinimumStability: "dev",
	PreferStable:     true,
}

// Document renders the defaults in manifest key order. Empty strings are
// left out.
func (r Root) Document() (*jsondoc.Document, error) {
	doc := jsondoc.New()
	fields := []struct {
		key   string
		value string
	}{
		{"name", r.Name},
		{"description", r.Description},
		{"minimum-stability", r.MinimumStability},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := doc.Set(f.value, f.key); err != nil {
			return nil, err
		}
	}
	if err := doc.Set(r.PreferStable, "prefer-stable"); err != nil {
		return nil, err
	}
	return doc, nil
}
