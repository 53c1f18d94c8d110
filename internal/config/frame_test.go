package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/credalab/credence/internal/domain"
)

func writeFrame(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrame(t *testing.T) {
	path := writeFrame(t, `hypotheses:
  - name: ok
    description: nominal operation
  - name: degraded
  - name: failed
`)

	frame, hyps, err := LoadFrame(path)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Size() != 3 {
		t.Errorf("frame size = %d, want 3", frame.Size())
	}
	if len(hyps) != 3 {
		t.Fatalf("hypotheses = %d, want 3", len(hyps))
	}
	if hyps[0].Description != "nominal operation" {
		t.Errorf("description = %q, want the configured one", hyps[0].Description)
	}
	if _, err := frame.Resolve([]string{"degraded", "failed"}); err != nil {
		t.Errorf("resolving configured names failed: %v", err)
	}
}

func TestLoadFrameRejectsBadFrames(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"duplicate names", "hypotheses:\n  - name: ok\n  - name: ok\n", domain.ErrDuplicateName},
		{"no hypotheses", "hypotheses: []\n", domain.ErrEmptyFrame},
		{"blank name", "hypotheses:\n  - description: unnamed\n", domain.ErrBlankName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadFrame(writeFrame(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFrameMissingFile(t *testing.T) {
	if _, _, err := LoadFrame(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("want an error for a missing frame file")
	}
}

func TestLoadFrameRejectsMalformedYAML(t *testing.T) {
	if _, _, err := LoadFrame(writeFrame(t, "hypotheses: [")); err == nil {
		t.Error("want an error for malformed YAML")
	}
}
