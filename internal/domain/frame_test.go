package domain

import (
	"errors"
	"strconv"
	"testing"

	"github.com/credalab/credence/internal/dst"
)

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr error
	}{
		{"valid", []string{"ok", "degraded", "failed"}, nil},
		{"empty", nil, ErrEmptyFrame},
		{"duplicate", []string{"ok", "ok"}, ErrDuplicateName},
		{"blank", []string{"ok", ""}, ErrBlankName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFrame(tt.names)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFrame() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewFrameTooLarge(t *testing.T) {
	names := make([]string, MaxFrameSize+1)
	for i := range names {
		names[i] = "h" + strconv.Itoa(i)
	}
	if _, err := NewFrame(names); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("error = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameResolve(t *testing.T) {
	frame, err := NewFrame([]string{"ok", "degraded", "failed"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		query   []string
		want    dst.Bits
		wantErr error
	}{
		{"single", []string{"ok"}, 0b001, nil},
		{"pair", []string{"degraded", "failed"}, 0b110, nil},
		{"repeat collapses", []string{"ok", "ok"}, 0b001, nil},
		{"unknown", []string{"on fire"}, 0, ErrUnknownName},
		{"empty", nil, 0, ErrNoHypotheses},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := frame.Resolve(tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %03b, want %03b", got, tt.want)
			}
		})
	}
}

func TestFrameRenderIgnoresForeignBits(t *testing.T) {
	frame, err := NewFrame([]string{"ok", "degraded", "failed"})
	if err != nil {
		t.Fatal(err)
	}

	q, _ := frame.Resolve([]string{"ok"})
	got := frame.Render(q.Complement())
	if len(got) != 2 || got[0] != "degraded" || got[1] != "failed" {
		t.Errorf("Render(complement) = %v, want the other two names", got)
	}
}

func TestFrameUniverse(t *testing.T) {
	frame, err := NewFrame([]string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Universe() != 0b111 {
		t.Errorf("Universe() = %b, want 111", frame.Universe())
	}
}
