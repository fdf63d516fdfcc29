package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/gg"

	"github.com/Mavwarf/moonicon/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// globalOpts holds the options accepted before or after the command.
type globalOpts struct {
	configPath string
	root       string
	verbose    bool
	noLog      bool
}

func main() {
	opts, args, err := parseGlobal(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	setupLogging(opts.verbose)

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "export":
		exportCmd(args[1:], opts)
	case "render":
		renderCmd(args[1:])
	case "list", "-l", "--list":
		listCmd(args[1:], opts)
	case "sheet":
		sheetCmd(args[1:], opts)
	case "history":
		historyCmd(args[1:], opts)
	case "config":
		configCmd(args[1:], opts)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "Run 'moonicon help' for usage.\n")
		os.Exit(1)
	}
}

// parseGlobal pulls the global options out of args and returns the rest in
// order.
func parseGlobal(args []string) (globalOpts, []string, error) {
	var opts globalOpts
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return opts, nil, errors.New("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case "--root", "-r":
			if i+1 >= len(args) {
				return opts, nil, errors.New("--root requires a directory")
			}
			opts.root = args[i+1]
			i++
		case "--verbose":
			opts.verbose = true
		case "--no-log":
			opts.noLog = true
		default:
			rest = append(rest, args[i])
		}
	}
	return opts, rest, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
}

func loadConfig(opts globalOpts) config.Config {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fatal("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}
	if cfg.Path != "" {
		slog.Debug("config loaded", "path", cfg.Path)
	}
	return cfg
}

// resolveRoot picks the project root: --root, then config, then ".".
func resolveRoot(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Options.Root != "" {
		return cfg.Options.Root
	}
	return config.DefaultRoot
}

// shouldLog reports whether the run ledger is written.
func shouldLog(cfg config.Config, noLog bool) bool {
	return cfg.Options.Log && !noLog
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("moonicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("moonicon %s - Render the sleep app icons into a Flutter project\n", version)
	fmt.Println(`
Usage:
  moonicon [options] <command> [args]

Options:
  --config, -c <path>    Path to moonicon-config.json
  --root, -r <dir>       Flutter project root (default: config or .)
  --verbose              Debug diagnostics on stderr
  --no-log               Do not record the run in the ledger

Commands:
  export [--dry-run] [set...]          Write icon sets (default: all)
  render <app|notification> <size> <out.png>
                                       Render a single icon
  list [set...]                        Show sizes and paths of each set
  sheet [--cell N] <out.png> [set...]  Contact sheet of every planned icon
  history [count]                      Show recent export runs
  history files <id>                   Files written by a run
  history summary [days|all]           Runs per day (default: 7 days)
  history clear                        Delete the run ledger
  config validate                      Check the config file
  version, -V                          Show version and build date
  help, -h, --help                     Show this help message

Sets:
  app-ios, app-android, notification-android, notification-ios

Config resolution:
  1. --config <path>                       (explicit)
  2. moonicon-config.json next to binary   (portable)
  3. ~/.config/moonicon/moonicon-config.json (user default)
  Without a config file, all sets are written below the current directory.

Examples:
  moonicon export                        Write every set into .
  moonicon -r ../sleep_app export app-ios
  moonicon export --dry-run              Show what would be written
  moonicon render app 1024 icon.png
  moonicon sheet preview.png`)
}
