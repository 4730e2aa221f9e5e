package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/1broseidon/winbridge/internal/bridge"
	"github.com/1broseidon/winbridge/internal/config"
	"github.com/1broseidon/winbridge/internal/logging"
	"github.com/1broseidon/winbridge/internal/runtimepath"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "host":
		os.Exit(runHost(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "create":
		os.Exit(runCreate(os.Args[2:]))
	case "move":
		os.Exit(runMove(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "center":
		os.Exit(runCenter(os.Args[2:]))
	case "focus":
		os.Exit(runSimple("focus", os.Args[2:]))
	case "show":
		os.Exit(runSimple("show", os.Args[2:]))
	case "hide":
		os.Exit(runSimple("hide", os.Args[2:]))
	case "maximize":
		os.Exit(runSimple("maximize", os.Args[2:]))
	case "unmaximize":
		os.Exit(runSimple("unmaximize", os.Args[2:]))
	case "minimize":
		os.Exit(runSimple("minimize", os.Args[2:]))
	case "restore":
		os.Exit(runSimple("restore", os.Args[2:]))
	case "close":
		os.Exit(runSimple("close", os.Args[2:]))
	case "fullscreen":
		os.Exit(runFullscreen(os.Args[2:]))
	case "ontop":
		os.Exit(runOnTop(os.Args[2:]))
	case "title":
		os.Exit(runTitle(os.Args[2:]))
	case "opacity":
		os.Exit(runOpacity(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winbridge <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  host                Start the native host (foreground)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list                List windows")
	fmt.Fprintln(w, "  displays            List displays")
	fmt.Fprintln(w, "  create              Create a new window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  move                Move a window to a new origin")
	fmt.Fprintln(w, "  resize              Resize a window")
	fmt.Fprintln(w, "  center              Center a window on its display")
	fmt.Fprintln(w, "  focus               Focus a window")
	fmt.Fprintln(w, "  show                Show a window")
	fmt.Fprintln(w, "  hide                Hide a window")
	fmt.Fprintln(w, "  maximize            Maximize a window")
	fmt.Fprintln(w, "  unmaximize          Unmaximize a window")
	fmt.Fprintln(w, "  minimize            Minimize a window")
	fmt.Fprintln(w, "  restore             Restore a minimized window")
	fmt.Fprintln(w, "  fullscreen          Enter or leave fullscreen")
	fmt.Fprintln(w, "  ontop               Pin or unpin a window above others")
	fmt.Fprintln(w, "  title               Set a window title")
	fmt.Fprintln(w, "  opacity             Set window opacity (0..1)")
	fmt.Fprintln(w, "  close               Ask a window to close")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  watch               Live window event monitor")
	fmt.Fprintln(w, "  pick                Interactively pick a window and act on it")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winbridge <command> --help' for command-specific options.")
}

// socketPath resolves the host socket location, preferring the config
// override.
func socketPath(cfg *config.Config) (string, error) {
	if cfg.SocketPath != "" {
		return cfg.SocketPath, nil
	}
	return runtimepath.SocketPath()
}

// connect loads the config and dials the host. The returned logger is
// shared by the command that needed the connection.
func connect() (*bridge.Client, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	path, err := socketPath(cfg)
	if err != nil {
		return nil, logger, err
	}

	client, err := bridge.Connect(path, logger)
	if err != nil {
		return nil, logger, err
	}
	return client, logger, nil
}
