// Command vedit is a full-screen, single-file terminal text editor.
package main

import (
	"fmt"
	"os"

	"github.com/hbradshaw/vedit/editor"
)

func die(term *editor.Terminal, format string, args ...any) {
	term.RestoreTerminal()
	term.Write([]byte("\x1b[2J\x1b[H"))
	fmt.Fprintf(os.Stderr, "vedit: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	term := editor.NewTerminal()
	if err := term.EnableRawMode(); err != nil {
		die(term, "%v", err)
	}
	defer term.RestoreTerminal()

	e := editor.New(term)
	if err := e.Init(); err != nil {
		die(term, "%v", err)
	}

	if len(os.Args) > 1 {
		if err := e.Open(os.Args[1]); err != nil {
			die(term, "%v", err)
		}
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		e.RefreshScreen()
		quit, err := e.Tick()
		if err != nil {
			die(term, "%v", err)
		}
		if quit {
			term.RestoreTerminal()
			term.Write([]byte("\x1b[2J\x1b[H"))
			os.Exit(0)
		}
	}
}
