package eventlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatRun renders r as a log block: a summary line, one detail line per
// file, and a terminating blank line.
//
//	2026-01-02T15:04:05Z  run  root="/src/app"  sets=app-ios  status=ok  files=16  elapsed=1.5s
//	2026-01-02T15:04:05Z    file[1] app-ios  size=1024  bytes=51234  sha256=ab12…  path="ios/…png"
func formatRun(r Run) string {
	ts := r.Time.Format(time.RFC3339)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  run  root=%q  sets=%s  status=%s  files=%d  elapsed=%s",
		ts, r.Root, strings.Join(r.Sets, ","), r.Status, r.FileCount, r.Elapsed.Round(time.Millisecond))
	if r.Error != "" {
		fmt.Fprintf(&b, "  error=%q", r.Error)
	}
	b.WriteByte('\n')
	for i, f := range r.Files {
		sum := f.SHA256
		if sum == "" {
			sum = "-"
		}
		fmt.Fprintf(&b, "%s    file[%d] %s  size=%d  bytes=%d  sha256=%s  path=%q\n",
			ts, i+1, f.Set, f.Size, f.Bytes, sum, f.Path)
	}
	b.WriteByte('\n')
	return b.String()
}

// ParseRuns parses log content into runs, oldest first. IDs are the 1-based
// block positions. Files are filled in from the detail lines. Blocks whose
// summary line is malformed are skipped but still consume an ID, so IDs stay
// stable while the log is only appended to.
func ParseRuns(content string) []Run {
	var runs []Run
	for i, block := range SplitBlocks(content) {
		lines := strings.Split(block, "\n")
		r, ok := parseSummary(lines[0])
		if !ok {
			continue
		}
		r.ID = int64(i + 1)
		for _, line := range lines[1:] {
			if f, ok := parseFileLine(line); ok {
				r.Files = append(r.Files, f)
			}
		}
		runs = append(runs, r)
	}
	return runs
}

func parseSummary(line string) (Run, bool) {
	ts, ok := ExtractTimestamp(line)
	if !ok || !strings.Contains(line, "  run  ") {
		return Run{}, false
	}
	r := Run{
		Time:   ts,
		Root:   quotedField(line, "root"),
		Status: extractField(line, "status"),
		Error:  quotedField(line, "error"),
	}
	if sets := extractField(line, "sets"); sets != "" {
		r.Sets = strings.Split(sets, ",")
	}
	r.FileCount, _ = strconv.Atoi(extractField(line, "files"))
	r.Elapsed, _ = time.ParseDuration(extractField(line, "elapsed"))
	return r, true
}

// parseFileLine parses a "file[N] set  size=…" detail line.
func parseFileLine(line string) (FileRecord, bool) {
	idx := strings.Index(line, "file[")
	if idx < 0 {
		return FileRecord{}, false
	}
	after := line[idx+len("file["):]
	bracket := strings.Index(after, "]")
	if bracket < 0 {
		return FileRecord{}, false
	}
	rest := strings.TrimLeft(after[bracket+1:], " ")
	set, _, _ := strings.Cut(rest, " ")

	f := FileRecord{
		Set:    set,
		Path:   quotedField(line, "path"),
		SHA256: extractField(line, "sha256"),
	}
	if f.SHA256 == "-" {
		f.SHA256 = ""
	}
	f.Size, _ = strconv.Atoi(extractField(line, "size"))
	f.Bytes, _ = strconv.Atoi(extractField(line, "bytes"))
	return f, true
}

// SplitBlocks splits log content on blank lines, trims whitespace from
// each block, and returns only non-empty blocks.
func SplitBlocks(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first "  " double-space separator). Returns the
// parsed time and true on success, or zero time and false on failure.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// quotedField returns the %q-encoded value after `  key="`, or "".
func quotedField(line, key string) string {
	marker := "  " + key + "="
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	return extractQuoted(line[idx+len(marker):])
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}
