// Copyright 2025, the transput authors.

// a68t is the transput bench driver: it runs Starlark transput
// scripts, or holds a dialogue when standard input is a terminal.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/NevilleDNZ/a68/bench"
	"github.com/NevilleDNZ/a68/transput"
)

const usage = `a68t

Usage:
  a68t [options] [SCRIPT...]

Arguments:
  SCRIPT  Bench scripts, run in order. With none named, a68t reads a
          script from standard input, or holds a dialogue when that
          is a terminal.

Options:
  -p NAME, --program=NAME     Program name for scratch files [default: a68t].
  -i FILE, --standin=FILE     Document standing in for stand in.
  -o FILE, --standout=FILE    Document standing in for stand out.
  -e FILE, --standerror=FILE  Document standing in for stand error.
  -v, --verbose               Trace transput operations.
  -h, --help                  Show this help.
`

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func run() (err error) {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		return
	}

	config := transput.Config{}
	config.Program, _ = opts.String("--program")
	config.StandInPath, _ = opts.String("--standin")
	config.StandOutPath, _ = opts.String("--standout")
	config.StandErrorPath, _ = opts.String("--standerror")
	config.Verbose, _ = opts.Bool("--verbose")

	b, err := bench.New(config)
	if err != nil {
		return
	}
	defer b.Close()

	scripts, _ := opts["SCRIPT"].([]string)

	if len(scripts) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return dialogue(b)
		}
		return b.Run("<stdin>", os.Stdin)
	}

	for _, script := range scripts {
		text, e := os.ReadFile(script)
		if e != nil {
			return e
		}
		if err = b.Run(script, text); err != nil {
			return
		}
	}

	return
}

// dialogue holds the interactive loop, one line at a time.
func dialogue(b *bench.Bench) (err error) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	for {
		line, e := cli.Prompt("a68t> ")
		switch e {
		case nil:
		case liner.ErrPromptAborted:
			continue
		default:
			// EOF ends the dialogue.
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		cli.AppendHistory(line)

		out, e := b.Interact(line)
		if e != nil {
			fmt.Fprintf(os.Stderr, "%v\n", e)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
