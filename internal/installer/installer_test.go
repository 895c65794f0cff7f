package installer

import (
	"errors"
	"testing"
)

func TestVerb_Validate(t *testing.T) {
	tests := []struct {
		verb    Verb
		wantErr bool
	}{
		{VerbInstall, false},
		{VerbUpdate, false},
		{Verb("require"), true},
		{Verb(""), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.verb), func(t *testing.T) {
			err := tt.verb.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVerb) {
					t.Errorf("Validate() = %v, want ErrUnknownVerb", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestProcessError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *ProcessError
		want string
	}{
		{
			name: "no output",
			err:  &ProcessError{Args: []string{"composer", "install"}, ExitCode: 1},
			want: "composer install stopped with a non-zero exit code (1), output: (none)",
		},
		{
			name: "with output",
			err:  &ProcessError{Args: []string{"composer", "update", "pkg/a"}, ExitCode: 2, Output: "boom"},
			want: "composer update pkg/a stopped with a non-zero exit code (2), output:\nboom",
		},
		{
			name: "quoted arguments",
			err:  &ProcessError{Args: []string{"/opt/my tools/composer", "install"}, ExitCode: 3},
			want: "'/opt/my tools/composer' install stopped with a non-zero exit code (3), output: (none)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
