package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name    string
		context string
		want    int
	}{
		{"global context", "global", 2},
		{"session context", "session", 5},
		{"input context", "input", 3},
		{"unknown context returns empty", "unknown", 0},
		{"empty context returns empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)
			if len(result) != tt.want {
				t.Errorf("ByContext(%q) returned %d bindings, want %d", tt.context, len(result), tt.want)
			}
			for _, kb := range result {
				if kb.Context != tt.context {
					t.Errorf("binding %q has context %q, want %q", kb.Description, kb.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, kb := range All {
		if len(kb.Keys) == 0 {
			t.Errorf("binding %q has no keys", kb.Description)
		}
		for _, key := range kb.Keys {
			if prev, ok := seen[key]; ok {
				t.Errorf("key %q bound to both %q and %q", key, prev, kb.Action)
			}
			seen[key] = kb.Action
		}
	}
}
