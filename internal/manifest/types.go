package manifest

import "path/filepath"

// FileName is the manifest file name looked up inside a member directory.
const FileName = "composer.json"

// Member holds the fields of a member manifest that mcm cares about.
// Everything else in the file is left to the installer.
type Member struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Type        string            `json:"type,omitempty"`
	Version     string            `json:"version,omitempty"`
	Require     map[string]string `json:"require,omitempty"`
	RequireDev  map[string]string `json:"require-dev,omitempty"`
}

// ConfigPath returns the manifest path inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, FileName)
}
