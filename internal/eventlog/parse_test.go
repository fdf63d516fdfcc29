package eventlog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFormatRun(t *testing.T) {
	r := Run{
		Time:      time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Root:      "/src/app",
		Sets:      []string{"app-ios"},
		Status:    StatusDryRun,
		Elapsed:   1234567 * time.Microsecond,
		FileCount: 1,
		Files:     []FileRecord{{Set: "app-ios", Path: "ios/a.png", Size: 1024}},
	}
	want := "2026-01-02T15:04:05Z  run  root=\"/src/app\"  sets=app-ios  status=dry-run  files=1  elapsed=1.235s\n" +
		"2026-01-02T15:04:05Z    file[1] app-ios  size=1024  bytes=0  sha256=-  path=\"ios/a.png\"\n" +
		"\n"
	if diff := cmp.Diff(want, formatRun(r)); diff != "" {
		t.Errorf("formatRun mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunsRoundTrip(t *testing.T) {
	r := Run{
		Time:      time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Root:      `C:\Users\me\sleep app`,
		Sets:      []string{"app-ios", "app-android"},
		Status:    StatusFailed,
		Error:     "export: write \"x\":\nboom",
		Elapsed:   250 * time.Millisecond,
		FileCount: 1,
		Files:     []FileRecord{{Set: "app-ios", Path: "ios/with space.png", Size: 60, Bytes: 77, SHA256: "deadbeef"}},
	}
	runs := ParseRuns(formatRun(r) + formatRun(r))
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	want := r
	want.ID = 2
	if diff := cmp.Diff(want, runs[1]); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRunsSkipsMalformed(t *testing.T) {
	content := "garbage line\n\n" +
		"2026-01-02T15:04:05Z  run  root=\"/a\"  sets=app-ios  status=ok  files=0  elapsed=1s\n\n" +
		"\n\n\n"
	runs := ParseRuns(content)
	if len(runs) != 1 {
		t.Fatalf("len = %d, want 1", len(runs))
	}
	// The malformed first block still takes ID 1.
	if runs[0].ID != 2 || runs[0].Root != "/a" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestParseRunsEmpty(t *testing.T) {
	if runs := ParseRuns(""); runs != nil {
		t.Errorf("ParseRuns(\"\") = %v, want nil", runs)
	}
	if runs := ParseRuns("\n\n  \n"); runs != nil {
		t.Errorf("ParseRuns(blank) = %v, want nil", runs)
	}
}

func TestSplitBlocksCRLF(t *testing.T) {
	got := SplitBlocks("a\r\nb\r\n\r\nc\r\n")
	if diff := cmp.Diff([]string{"a\nb", "c"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTimestamp(t *testing.T) {
	ts, ok := ExtractTimestamp("2026-01-02T15:04:05+02:00  run  status=ok")
	if !ok {
		t.Fatal("expected ok")
	}
	if ts.UTC().Hour() != 13 {
		t.Errorf("hour = %d, want 13 UTC", ts.UTC().Hour())
	}
	if _, ok := ExtractTimestamp("not a timestamp  x"); ok {
		t.Error("expected failure")
	}
	if _, ok := ExtractTimestamp("nospace"); ok {
		t.Error("expected failure without separator")
	}
}

func TestQuotedField(t *testing.T) {
	line := `ts  run  root="a  b=\"c\""  error="x"`
	if got := quotedField(line, "root"); got != `a  b="c"` {
		t.Errorf("root = %q", got)
	}
	if got := quotedField(line, "error"); got != "x" {
		t.Errorf("error = %q", got)
	}
	if got := quotedField(line, "path"); got != "" {
		t.Errorf("missing = %q", got)
	}
	if got := extractQuoted(`"unterminated`); got != "" {
		t.Errorf("unterminated = %q", got)
	}
}
