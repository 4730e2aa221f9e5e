package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/winbridge/internal/wire"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winbridge pick")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick a window from a list, then pick an action to apply to it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		fs.Usage()
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pick requires an interactive terminal (stdin/stdout must be TTYs)")
		return 1
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
	if len(windows) == 0 {
		fmt.Fprintln(os.Stderr, "no windows found")
		return 1
	}

	windowOpts := make([]huh.Option[wire.WindowID], 0, len(windows))
	for _, w := range windows {
		label := fmt.Sprintf("%-40s %dx%d", w.Title, w.Bounds.Width, w.Bounds.Height)
		windowOpts = append(windowOpts, huh.NewOption(label, w.ID))
	}

	var target wire.WindowID
	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[wire.WindowID]().
				Title("Window").
				Options(windowOpts...).
				Value(&target),
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Focus", "focus"),
					huh.NewOption("Maximize", "maximize"),
					huh.NewOption("Unmaximize", "unmaximize"),
					huh.NewOption("Minimize", "minimize"),
					huh.NewOption("Restore", "restore"),
					huh.NewOption("Center", "center"),
					huh.NewOption("Enter fullscreen", "fullscreen"),
					huh.NewOption("Leave fullscreen", "unfullscreen"),
					huh.NewOption("Close", "close"),
				).
				Value(&action),
		),
	)
	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	actionCtx, actionCancel := callContext()
	defer actionCancel()

	switch action {
	case "focus":
		err = client.Focus(actionCtx, target)
	case "maximize":
		err = client.Maximize(actionCtx, target)
	case "unmaximize":
		err = client.Unmaximize(actionCtx, target)
	case "minimize":
		err = client.Minimize(actionCtx, target)
	case "restore":
		err = client.Restore(actionCtx, target)
	case "center":
		err = client.Center(actionCtx, target)
	case "fullscreen":
		err = client.SetFullScreen(actionCtx, target, true)
	case "unfullscreen":
		err = client.SetFullScreen(actionCtx, target, false)
	case "close":
		err = client.CloseWindow(actionCtx, target)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
