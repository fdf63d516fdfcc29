package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Mavwarf/moonicon/internal/config"
	"github.com/Mavwarf/moonicon/internal/eventlog"
	"github.com/Mavwarf/moonicon/internal/export"
	"github.com/Mavwarf/moonicon/internal/paths"
	"github.com/Mavwarf/moonicon/internal/publish"
	"github.com/Mavwarf/moonicon/internal/sheet"
)

func exportCmd(args []string, opts globalOpts) {
	dryRun, names, err := parseExportArgs(args)
	if err != nil {
		fatal("%v", err)
	}
	cfg := loadConfig(opts)
	if len(names) == 0 {
		names = cfg.Options.Sets
	}
	sets, err := export.Select(names)
	if err != nil {
		fatal("%v", err)
	}
	root, err := filepath.Abs(resolveRoot(opts.root, cfg))
	if err != nil {
		fatal("%v", err)
	}

	verb := "wrote"
	if dryRun {
		verb = "would write"
	}
	res, runErr := export.Run(root, sets, export.Options{
		DryRun: dryRun,
		Progress: func(f export.File) {
			fmt.Println(formatFileLine(verb, f))
		},
	})

	record := eventlog.NewRun(res, setNames(sets), dryRun, runErr)
	if shouldLog(cfg, opts.noLog) {
		recordRun(cfg, record)
	}
	if publish.Enabled(cfg.Options.Publish) {
		if err := publish.Send(cfg.Options.Publish, publish.NewSummary(version, record)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: publish: %v\n", err)
		}
	}

	if runErr != nil {
		fatal("%v", runErr)
	}
	fmt.Println(formatRunSummary(res, displayRoot(res.Root), dryRun))
}

// displayRoot shortens root relative to the working directory.
func displayRoot(root string) string {
	wd, err := os.Getwd()
	if err != nil {
		return root
	}
	return paths.Rel(wd, root)
}

// parseExportArgs splits export arguments into the dry-run flag and set
// names.
func parseExportArgs(args []string) (dryRun bool, names []string, err error) {
	for _, a := range args {
		switch {
		case a == "--dry-run" || a == "-n":
			dryRun = true
		case strings.HasPrefix(a, "-"):
			return false, nil, fmt.Errorf("unknown export option %s", a)
		default:
			names = append(names, a)
		}
	}
	return dryRun, names, nil
}

func setNames(sets []export.Set) []string {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return names
}

// recordRun appends r to the ledger. Failures only warn.
func recordRun(cfg config.Config, r eventlog.Run) {
	store, err := eventlog.Open(paths.DataDir(), cfg.Options.LogBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run ledger: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.LogRun(r); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run ledger: %v\n", err)
		return
	}
	slog.Debug("run recorded", "store", store.Path(), "files", r.FileCount)
}

// formatFileLine renders one progress line, e.g.
// "  wrote        192  4.1 kB  android/.../ic_launcher.png".
func formatFileLine(verb string, f export.File) string {
	size := "json"
	if f.Size > 0 {
		size = strconv.Itoa(f.Size)
	}
	n := "-"
	if f.Bytes > 0 {
		n = humanize.Bytes(uint64(f.Bytes))
	}
	return fmt.Sprintf("  %s  %s  %s  %s", dim(verb), padL(size, 5), padL(n, 7), f.Path)
}

func formatRunSummary(res export.Result, root string, dryRun bool) string {
	elapsed := formatDuration(res.Elapsed)
	if dryRun {
		return fmt.Sprintf("%s %d files planned below %s", yellow("Dry run:"), len(res.Files), root)
	}
	var total int
	for _, f := range res.Files {
		total += f.Bytes
	}
	return fmt.Sprintf("%s %d files (%s) below %s in %s",
		green("Done:"), len(res.Files), humanize.Bytes(uint64(total)), root, elapsed)
}

// formatDuration returns a compact duration string (e.g. "850ms", "2.4s").
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

func renderCmd(args []string) {
	req, err := export.ParseRequest(args)
	if err != nil {
		fatal("%v\nUsage: moonicon render <app|notification> <size> <out.png>", err)
	}
	n, err := req.Write()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Wrote %s (%s icon, %dx%d, %s)\n", req.Out, req.Kind, req.Size, req.Size, humanize.Bytes(uint64(n)))
}

func listCmd(args []string, opts globalOpts) {
	names := args
	if len(names) == 0 && opts.configPath != "" {
		names = loadConfig(opts).Options.Sets
	}
	sets, err := export.Select(names)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Print(formatSets(sets))
}

// formatSets lists each set with its entries, one line per file.
func formatSets(sets []export.Set) string {
	var b strings.Builder
	for i, s := range sets {
		if i > 0 {
			b.WriteString("\n")
		}
		pngs, manifests := export.Count([]export.Set{s})
		fmt.Fprintf(&b, "%s %s\n", bold(s.Name), dim(fmt.Sprintf("(%s, %d png, %d manifest)", s.Kind, pngs, manifests)))
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "  %s  %s\n", padL(strconv.Itoa(e.Size), 5), e.Path)
		}
		if s.Manifest != nil {
			fmt.Fprintf(&b, "  %s  %s\n", padL("json", 5), s.Manifest.Path)
		}
	}
	return b.String()
}

func sheetCmd(args []string, opts globalOpts) {
	cell, out, names, err := parseSheetArgs(args)
	if err != nil {
		fatal("%v\nUsage: moonicon sheet [--cell N] <out.png> [set...]", err)
	}
	sets, err := export.Select(names)
	if err != nil {
		fatal("%v", err)
	}
	tiles, err := sheet.FromPlan(export.Plan(sets))
	if err != nil {
		fatal("%v", err)
	}
	img := sheet.Render(tiles, cell)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		fatal("%v", err)
	}
	if err := paths.AtomicWrite(out, buf.Bytes()); err != nil {
		fatal("%v", err)
	}
	cols, rows := sheet.Grid(len(tiles))
	fmt.Printf("Wrote %s (%d icons, %dx%d grid)\n", out, len(tiles), cols, rows)
}

func parseSheetArgs(args []string) (cell int, out string, names []string, err error) {
	cell = sheet.DefaultCell
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--cell":
			if i+1 >= len(args) {
				return 0, "", nil, errors.New("--cell requires a pixel size")
			}
			n, err := export.ParseSize(args[i+1])
			if err != nil {
				return 0, "", nil, err
			}
			if n < sheet.MinCell {
				return 0, "", nil, fmt.Errorf("--cell must be at least %d", sheet.MinCell)
			}
			cell = n
			i++
		default:
			rest = append(rest, args[i])
		}
	}
	if len(rest) == 0 {
		return 0, "", nil, errors.New("missing output file")
	}
	return cell, rest[0], rest[1:], nil
}

func configCmd(args []string, opts globalOpts) {
	if len(args) == 0 || args[0] == "validate" {
		configValidate(opts)
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
	os.Exit(1)
}

func configValidate(opts globalOpts) {
	cfg := loadConfig(opts)
	if cfg.Path == "" {
		fmt.Println("No config file found, using defaults.")
		return
	}
	fmt.Printf("Config OK: %s\n", cfg.Path)
}
