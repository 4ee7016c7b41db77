package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q", String())
	}
}

func TestShort(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	tests := []struct {
		version, commit, want string
	}{
		{"v1.2.3", "none", "v1.2.3"},
		{"v1.2.3", "3f2a9c1d8e7b", "v1.2.3 (3f2a9c1)"},
		{"v0.1.0", "abc", "v0.1.0 (abc)"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %s/%s = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
