package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Mavwarf/moonicon/internal/icon"
)

func TestParseRequest(t *testing.T) {
	got, err := ParseRequest([]string{"Notification", "96", "n.png"})
	if err != nil {
		t.Fatal(err)
	}
	want := Request{Kind: icon.KindNotification, Size: 96, Out: "n.png"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRequest mismatch (-want +got):\n%s", diff)
	}

	bad := [][]string{
		{"app", "64"},
		{"app", "64", "x.png", "extra"},
		{"moon", "64", "x.png"},
		{"app", "0", "x.png"},
		{"app", "-3", "x.png"},
		{"app", "big", "x.png"},
	}
	for _, args := range bad {
		if _, err := ParseRequest(args); err == nil {
			t.Errorf("ParseRequest(%q): expected error", args)
		}
	}
}

func TestRequestWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "app.png")
	n, err := Request{Kind: icon.KindApp, Size: 40, Out: out}.Write()
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if int(info.Size()) != n {
		t.Errorf("Write reported %d bytes, file has %d", n, info.Size())
	}
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 40 {
		t.Errorf("decoded %dx%d, want 40x40", cfg.Width, cfg.Height)
	}
}
