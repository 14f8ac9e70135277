package prefabs

import "testing"

func TestClassifyChanges(t *testing.T) {
	tests := []struct {
		path     string
		wantKind ChangeKind
		wantName string
		ok       bool
	}{
		{"prefabs/enemies/dummy.yaml", ChangeEncounter, "dummy", true},
		{"prefabs/enemies/gravekeeper.YML", ChangeEncounter, "gravekeeper", true},
		{"prefabs/scripts/drift.tengo", ChangeScript, "drift.tengo", true},
		{"prefabs/enemies/dummy.yaml.swp", "", "", false},
		{"prefabs/enemies/.gitkeep", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ch, ok := classify(tt.path)
			if ok != tt.ok {
				t.Fatalf("classify(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if !ok {
				return
			}
			if ch.Kind != tt.wantKind || ch.Name != tt.wantName {
				t.Fatalf("classify(%q) = %s %q, want %s %q", tt.path, ch.Kind, ch.Name, tt.wantKind, tt.wantName)
			}
		})
	}
}
