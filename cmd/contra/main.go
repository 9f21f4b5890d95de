// Command contra is the CLI entry point of spec.md §6: an argument-less
// invocation launches the default backend, and x11/tty/win subcommands
// select one explicitly. Only the tty backend (cli package) is
// implemented in-process; x11/win are out of scope per spec.md §1's
// "external collaborators" boundary and print a not-available message.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/contra-emu/contra/cli"
)

const usage = `usage: contra [tty|x11|win] [--help]

  tty   run inside the current terminal (default)
  x11   run as an X11 window (not available in this build)
  win   run as a Win32 window (not available in this build)
`

func main() {
	args := os.Args[1:]
	backend := "tty"
	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			fmt.Print(usage)
			os.Exit(0)
		case "tty", "x11", "win":
			backend = args[0]
		default:
			fmt.Fprintf(os.Stderr, "contra: unknown subcommand %q\n", args[0])
			os.Exit(1)
		}
	}

	switch backend {
	case "x11", "win":
		fmt.Fprintf(os.Stderr, "contra: %s backend is not available in this build\n", backend)
		os.Exit(1)
	}

	cfgPath := cli.DefaultConfigPath()
	cfg, err := cli.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "contra: %v\n", err)
		os.Exit(1)
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintln(os.Stderr, "contra: "+w)
	}

	opts := cli.Options{
		Shell:    cfg.String("shell", os.Getenv("SHELL")),
		AutoSize: cfg.Bool("autosize", true),
		Debug:    cfg.Bool("debug", false),
	}

	term, err := cli.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "contra: %v\n", err)
		os.Exit(1)
	}

	exitCode := make(chan int, 1)
	term.OnExit = func(code int) { exitCode <- code }

	if err := term.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "contra: %v\n", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case code := <-exitCode:
		term.Stop()
		os.Exit(code)
	case <-sigCh:
		term.Stop()
		os.Exit(0)
	}
}
