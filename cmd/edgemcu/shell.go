package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (a *app) completer() *readline.PrefixCompleter {
	var names []readline.PrefixCompleterInterface
	for _, at := range a.surface.List() {
		names = append(names, readline.PcItem(at.Name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("list"),
		readline.PcItem("show", names...),
		readline.PcItem("store", names...),
		readline.PcItem("status"),
		readline.PcItem("led-off"),
		readline.PcItem("leds"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// shell runs the interactive command loop until EOF, quit or ctx ends.
func (a *app) shell(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "edgemcu> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    a.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "help", "?":
			printHelp(out)
		case "quit", "exit", "q":
			return nil
		default:
			if err := a.exec(ctx, out, fields); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Commands:
  list                  - List attributes
  show <attr>           - Print an attribute value
  store <attr> <value>  - Write an attribute value
  status                - Print the cached WoL status byte
  led-off <name>        - Force an LED off
  leds                  - List LEDs
  help                  - Show this help
  quit                  - Exit`)
}
