package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "mcm"},
		{"DisplayName", DisplayName(), "MCM"},
		{"HomeDir", HomeDir(), ".mcm"},
		{"EnvPrefix", EnvPrefix(), "MCM"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if Description() == "" {
		t.Error("Description() is empty")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("base_dir"); got != "MCM_BASE_DIR" {
		t.Errorf("EnvVar(base_dir) = %q, want MCM_BASE_DIR", got)
	}
}
