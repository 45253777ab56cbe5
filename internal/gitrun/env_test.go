package gitrun

import "testing"

func TestBuildEnv_ControlledOverrides(t *testing.T) {
	t.Setenv("GIT_PAGER", "less") // inherited value that must lose

	env := buildEnv(nil)

	tests := []struct {
		key  string
		want string
	}{
		{"GIT_TERMINAL_PROMPT", "0"},
		{"GCM_INTERACTIVE", "Never"},
		{"GIT_PAGER", "cat"},
		{"LC_ALL", "C"},
		{"GIT_OPTIONAL_LOCKS", "0"},
	}

	for _, tt := range tests {
		got, found := envValue(env, tt.key)
		if !found {
			t.Errorf("%s missing from env", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestBuildEnv_CallerExtrasWin(t *testing.T) {
	env := buildEnv(map[string]string{"GIT_PAGER": "more", "CUSTOM_VAR": "1"})

	if got, _ := envValue(env, "GIT_PAGER"); got != "more" {
		t.Errorf("GIT_PAGER = %q, want caller override %q", got, "more")
	}
	if got, _ := envValue(env, "CUSTOM_VAR"); got != "1" {
		t.Errorf("CUSTOM_VAR = %q, want %q", got, "1")
	}
}
