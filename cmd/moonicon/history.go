package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Mavwarf/moonicon/internal/eventlog"
	"github.com/Mavwarf/moonicon/internal/paths"
)

func historyCmd(args []string, opts globalOpts) {
	cfg := loadConfig(opts)
	store, err := eventlog.Open(paths.DataDir(), cfg.Options.LogBackend)
	if err != nil {
		fatal("%v", err)
	}
	defer store.Close()

	if len(args) > 0 {
		switch args[0] {
		case "files":
			historyFiles(store, args[1:])
			return
		case "summary":
			historySummary(store, args[1:])
			return
		case "clear":
			if err := store.Clear(); err != nil {
				fatal("%v", err)
			}
			fmt.Println("Run history cleared.")
			return
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("count must be a positive integer")
		}
		count = n
	}

	runs, err := store.Runs(count)
	if err != nil {
		fatal("%v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No export runs recorded.")
		return
	}
	fmt.Print(renderRuns(runs))
}

func historyFiles(store eventlog.Store, args []string) {
	if len(args) != 1 {
		fatal("usage: moonicon history files <run-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fatal("run id must be a positive integer")
	}
	files, err := store.Files(id)
	if err != nil {
		fatal("%v", err)
	}
	if len(files) == 0 {
		fmt.Printf("Run %d wrote no files.\n", id)
		return
	}
	fmt.Print(renderFiles(files))
}

func historySummary(store eventlog.Store, args []string) {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fatal("days must be a positive integer or \"all\"")
			}
			days = n
		}
	}

	runs, err := store.Runs(0)
	if err != nil {
		fatal("%v", err)
	}
	summary := eventlog.SummarizeByDay(runs, days)
	if len(summary) == 0 {
		if days == 0 {
			fmt.Println("No export runs recorded.")
		} else {
			fmt.Println("No export runs in the last", days, "days.")
		}
		return
	}
	fmt.Print(renderSummary(summary))
}

// --- Table layout ---

const (
	colID     = 5
	colStatus = 8
	colNumber = 7
	colDate   = 12
)

// renderRuns prints one line per run, newest first.
func renderRuns(runs []eventlog.Run) string {
	var w strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&w, "%s  %s  %s  %s  %s  %s  %s\n",
			padL("#"+strconv.FormatInt(r.ID, 10), colID),
			r.Time.Local().Format("2006-01-02 15:04"),
			colorPadR(statusColor(r.Status), r.Status, colStatus),
			padL(strconv.Itoa(r.FileCount), 3)+" files",
			padL(formatDuration(r.Elapsed), colNumber),
			strings.Join(r.Sets, ","),
			dim(r.Root),
		)
		if r.Error != "" {
			fmt.Fprintf(&w, "%s  %s\n", strings.Repeat(" ", colID), yellow(r.Error))
		}
	}
	return w.String()
}

func renderFiles(files []eventlog.FileRecord) string {
	var w strings.Builder
	for _, f := range files {
		size := "json"
		if f.Size > 0 {
			size = strconv.Itoa(f.Size)
		}
		sum := "-"
		if len(f.SHA256) >= 12 {
			sum = f.SHA256[:12]
		}
		fmt.Fprintf(&w, "%s  %s  %s  %s  %s\n",
			padR(f.Set, 20), padL(size, 5), padL(humanize.Bytes(uint64(f.Bytes)), colNumber), dim(sum), f.Path)
	}
	return w.String()
}

func renderSummary(days []eventlog.DaySummary) string {
	var w strings.Builder
	sep := strings.Repeat("-", colDate+4*(colNumber+2))
	fmt.Fprintf(&w, "%s  %s  %s  %s  %s\n", bold(padR("Date", colDate)),
		bold(padL("Runs", colNumber)), bold(padL("Failed", colNumber)),
		bold(padL("Dry", colNumber)), bold(padL("Files", colNumber)))
	w.WriteString(dim(sep) + "\n")

	var total eventlog.DaySummary
	for _, d := range days {
		failed := padL(strconv.Itoa(d.Failed), colNumber)
		if d.Failed > 0 {
			failed = colorPadL(yellow, strconv.Itoa(d.Failed), colNumber)
		}
		fmt.Fprintf(&w, "%s  %s  %s  %s  %s\n",
			padR(d.Date.Format("2006-01-02"), colDate),
			padL(strconv.Itoa(d.Runs), colNumber), failed,
			padL(strconv.Itoa(d.DryRun), colNumber),
			padL(humanize.Comma(int64(d.Files)), colNumber))
		total.Runs += d.Runs
		total.Failed += d.Failed
		total.DryRun += d.DryRun
		total.Files += d.Files
	}
	if len(days) > 1 {
		w.WriteString(dim(sep) + "\n")
		fmt.Fprintf(&w, "%s  %s  %s  %s  %s\n", bold(padR("Total", colDate)),
			padL(strconv.Itoa(total.Runs), colNumber), padL(strconv.Itoa(total.Failed), colNumber),
			padL(strconv.Itoa(total.DryRun), colNumber), padL(humanize.Comma(int64(total.Files)), colNumber))
	}
	return w.String()
}

func statusColor(status string) func(string) string {
	switch status {
	case eventlog.StatusOK:
		return green
	case eventlog.StatusFailed:
		return yellow
	default:
		return cyan
	}
}

// --- ANSI color helpers (only on a terminal, disabled by NO_COLOR) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string   { return ansi("\033[1m", s) }
func dim(s string) string    { return ansi("\033[2m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func yellow(s string) string { return ansi("\033[33m", s) }

// padL pads s to width with spaces on the left.
func padL(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// padR pads s to width with spaces on the right.
func padR(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// colorPadL applies a color function to s, then left-pads to width
// (accounting for invisible ANSI escape bytes).
func colorPadL(colorFn func(string) string, s string, width int) string {
	colored := colorFn(s)
	return padL(colored, width+(len(colored)-len(s)))
}

func colorPadR(colorFn func(string) string, s string, width int) string {
	colored := colorFn(s)
	return padR(colored, width+(len(colored)-len(s)))
}
