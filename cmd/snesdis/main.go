// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/beevik/snes816/host"
	"github.com/beevik/term"
)

var interactive bool

func init() {
	flag.BoolVar(&interactive, "i", false, "drop into an interactive prompt after loading the ROM")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: snesdis [-i] <rom-path>\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}
	romPath := args[0]

	if _, err := os.Stat(romPath); err != nil {
		exitOnError(err)
	}

	h := host.New()

	load := fmt.Sprintf("rom load %s\nrun\n", romPath)
	if !interactive {
		load += "disassemble\n"
		h.RunCommands(strings.NewReader(load), os.Stdout, false)
		return
	}

	h.RunCommands(strings.NewReader(load), os.Stdout, false)

	// Ctrl-C during the interactive prompt just returns to a fresh
	// prompt; there is no running CPU to break out of.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			fmt.Println()
		}
	}()

	fd := int(os.Stdin.Fd())
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(fd))
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
