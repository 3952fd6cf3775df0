package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	bannerColor = color.New(color.FgBlue)
	byeColor    = color.New(color.FgGreen)
)

// runREPL starts an interactive loop that tokenizes each line the user
// enters and prints its token stream, colorized the same way -dump-tokens
// does. It's meant for poking at the lexer's behavior on small snippets
// without writing them to a file first.
func runREPL() {
	bannerColor.Println("slc token REPL — type a line to see its tokens, ':quit' to quit")

	rl, err := readline.New("slc> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting REPL: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			byeColor.Fprintln(os.Stdout, "Goodbye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			byeColor.Fprintln(os.Stdout, "Goodbye!")
			return
		}

		rl.SaveHistory(line)
		printTokens(os.Stdout, line)
	}
}
