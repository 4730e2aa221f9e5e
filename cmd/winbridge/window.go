package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/1broseidon/winbridge/internal/bridge"
	"github.com/1broseidon/winbridge/internal/wire"
)

// callTimeout bounds every one-shot CLI remote call.
const callTimeout = 10 * time.Second

func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func parseWindowID(arg string) (wire.WindowID, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", arg)
	}
	return wire.WindowID(id), nil
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge list [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List all top-level windows known to the host.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output window details as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	windows, err := client.ListWindows(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, w := range windows {
		fmt.Printf("%-10d %4dx%-4d @%d,%-5d %s\n",
			w.ID, w.Bounds.Width, w.Bounds.Height, w.Bounds.X, w.Bounds.Y, w.Title)
	}
	return 0
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge displays [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List connected displays and their geometry.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output display details as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays takes no arguments")
		fs.Usage()
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	displays, err := client.Displays(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(displays); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for _, d := range displays {
		fmt.Printf("%-3d %-12s %4dx%-4d @%d,%d\n", d.ID, d.Name, d.Width, d.Height, d.X, d.Y)
	}
	return 0
}

func runCreate(args []string) int {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge create [--title T] [--x N --y N --width N --height N] [--hidden] [--ontop] [--style normal|hidden] [--parent ID]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create a new window. Omitted geometry falls back to the host's")
		fmt.Fprintln(os.Stderr, "configured window defaults. Prints the new window id.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	title := fs.String("title", "", "Window title")
	x := fs.Int("x", 0, "X origin")
	y := fs.Int("y", 0, "Y origin")
	width := fs.Int("width", 0, "Width in pixels")
	height := fs.Int("height", 0, "Height in pixels")
	hidden := fs.Bool("hidden", false, "Create the window without showing it")
	onTop := fs.Bool("ontop", false, "Keep the window above others")
	style := fs.String("style", "", "Title bar style (normal or hidden)")
	parent := fs.Uint("parent", 0, "Parent window id (creates a sub-window)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "create takes no arguments")
		fs.Usage()
		return 2
	}

	opts := bridge.CreateWindowOptions{
		Title:         *title,
		Hidden:        *hidden,
		AlwaysOnTop:   *onTop,
		TitleBarStyle: wire.TitleBarStyle(*style),
	}
	if *width > 0 || *height > 0 {
		opts.Bounds = &wire.Bounds{X: *x, Y: *y, Width: *width, Height: *height}
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()

	var id wire.WindowID
	if *parent != 0 {
		id, err = client.CreateSubWindow(ctx, wire.WindowID(*parent), opts)
	} else {
		id, err = client.CreateWindow(ctx, opts)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(id)
	return 0
}

func runMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge move <window> <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move a window to a new origin, keeping its size.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "move requires <window> <x> <y>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	x, errX := strconv.Atoi(fs.Arg(1))
	y, errY := strconv.Atoi(fs.Arg(2))
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "x and y must be integers")
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()

	current, err := client.GetBounds(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.SetBounds(ctx, id, wire.Bounds{X: x, Y: y, Width: current.Width, Height: current.Height}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runResize(args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge resize <window> <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resize a window, keeping its origin.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "resize requires <window> <width> <height>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	width, errW := strconv.Atoi(fs.Arg(1))
	height, errH := strconv.Atoi(fs.Arg(2))
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		fmt.Fprintln(os.Stderr, "width and height must be positive integers")
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()

	current, err := client.GetBounds(ctx, id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.SetBounds(ctx, id, wire.Bounds{X: current.X, Y: current.Y, Width: width, Height: height}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runCenter(args []string) int {
	fs := flag.NewFlagSet("center", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge center <window>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "center requires <window>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	if err := client.Center(ctx, id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runSimple handles the single-argument window verbs that map one-to-one
// onto a client call.
func runSimple(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: winbridge %s <window>\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires <window>\n", name)
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()

	switch name {
	case "focus":
		err = client.Focus(ctx, id)
	case "show":
		err = client.Show(ctx, id)
	case "hide":
		err = client.Hide(ctx, id)
	case "maximize":
		err = client.Maximize(ctx, id)
	case "unmaximize":
		err = client.Unmaximize(ctx, id)
	case "minimize":
		err = client.Minimize(ctx, id)
	case "restore":
		err = client.Restore(ctx, id)
	case "close":
		err = client.CloseWindow(ctx, id)
	default:
		err = fmt.Errorf("unknown verb %q", name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runFullscreen(args []string) int {
	fs := flag.NewFlagSet("fullscreen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge fullscreen [--off] <window>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	off := fs.Bool("off", false, "Leave fullscreen instead of entering it")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "fullscreen requires <window>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	if err := client.SetFullScreen(ctx, id, !*off); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runOnTop(args []string) int {
	fs := flag.NewFlagSet("ontop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge ontop [--off] <window>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	off := fs.Bool("off", false, "Unpin instead of pinning")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ontop requires <window>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	if err := client.SetAlwaysOnTop(ctx, id, !*off); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTitle(args []string) int {
	fs := flag.NewFlagSet("title", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge title <window> <title>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "title requires <window> <title>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	if err := client.SetTitle(ctx, id, fs.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runOpacity(args []string) int {
	fs := flag.NewFlagSet("opacity", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge opacity <window> <value>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Value is a float between 0 (transparent) and 1 (opaque).")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "opacity requires <window> <value>")
		fs.Usage()
		return 2
	}

	id, err := parseWindowID(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	value, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "value must be a float between 0 and 1")
		return 2
	}

	client, _, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := callContext()
	defer cancel()
	if err := client.SetOpacity(ctx, id, value); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
