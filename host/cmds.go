// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("snesdis", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Data:     (*Host).cmdHelp,
		},
		{
			Name:  "rom",
			Brief: "ROM commands",
			Subcommands: cmd.NewTree("ROM", []cmd.Command{
				{
					Name:  "load",
					Brief: "Load a ROM image",
					Description: "Load a cartridge image from disk, classify its" +
						" mapping, and start a fresh Analysis seeded with its" +
						" reset and NMI vectors.",
					HelpText: "rom load <path>",
					Data:     (*Host).cmdROMLoad,
				},
			}),
		},
		{
			Name:  "entrypoint",
			Brief: "Entry point commands",
			Subcommands: cmd.NewTree("Entry point", []cmd.Command{
				{
					Name:  "add",
					Brief: "Register an additional entry point",
					Description: "Register a user entry point the executor will" +
						" explore from on the next \"run\", in addition to the" +
						" reset and NMI vectors.",
					HelpText: "entrypoint add <label> <pc> [<m> <x>]",
					Data:     (*Host).cmdEntryPointAdd,
				},
			}),
		},
		{
			Name:  "assert",
			Brief: "Assertion commands",
			Subcommands: cmd.NewTree("Assert", []cmd.Command{
				{
					Name:  "instruction",
					Brief: "Override a single instruction's unresolved state change",
					Description: "Record an InstructionScope assertion at <pc>" +
						" within subroutine <subpc>: the executor continues past" +
						" the unresolved instruction as if <m>/<x> had been the" +
						" M/X changes it made. <m>/<x> accept 0, 1, or - (no change).",
					HelpText: "assert instruction <pc> <subpc> <m> <x>",
					Data:     (*Host).cmdAssertInstruction,
				},
				{
					Name:  "subroutine",
					Brief: "Override a subroutine's unresolved return state change",
					Description: "Record a SubroutineScope assertion at <pc>" +
						" within subroutine <subpc>: the executor stops there and" +
						" records <m>/<x> as the subroutine's known return change.",
					HelpText: "assert subroutine <pc> <subpc> <m> <x>",
					Data:     (*Host).cmdAssertSubroutine,
				},
			}),
		},
		{
			Name:     "jumptable",
			Shortcut: "jt",
			Brief:    "Jump table commands",
			Subcommands: cmd.NewTree("Jump table", []cmd.Command{
				{
					Name:  "define",
					Brief: "Assert an indirect jump's target table",
					Description: "Resolve the indirect jump at <pc> against the" +
						" byte range [<start>,<end>] relative to its own pointer" +
						" argument, letting the next \"run\" explore every" +
						" resolved target.",
					HelpText: "jumptable define <pc> <start> <end>",
					Data:     (*Host).cmdJumpTableDefine,
				},
				{
					Name:        "list",
					Brief:       "List known jump tables",
					Description: "Show every jump table the executor has registered, resolved or not.",
					HelpText:    "jumptable list",
					Data:        (*Host).cmdJumpTableList,
				},
			}),
		},
		{
			Name:  "label",
			Brief: "Label commands",
			Subcommands: cmd.NewTree("Label", []cmd.Command{
				{
					Name:  "set",
					Brief: "Set a user label",
					Description: "Override the label the Label Resolver would" +
						" otherwise assign at <pc>. An empty name removes the override.",
					HelpText: "label set <pc> [<name>]",
					Data:     (*Host).cmdLabelSet,
				},
			}),
		},
		{
			Name:  "comment",
			Brief: "Comment commands",
			Subcommands: cmd.NewTree("Comment", []cmd.Command{
				{
					Name:  "set",
					Brief: "Set a user comment",
					Description: "Attach a trailing comment to the instruction at" +
						" <pc>. An empty text removes the comment.",
					HelpText: "comment set <pc> [<text>]",
					Data:     (*Host).cmdCommentSet,
				},
			}),
		},
		{
			Name:  "run",
			Brief: "Run the analysis",
			Description: "Clear derived results and re-run the symbolic executor" +
				" from every entry point, then report subroutine and instruction counts.",
			HelpText: "run",
			Data:     (*Host).cmdRun,
		},
		{
			Name:     "disassemble",
			Shortcut: "d",
			Brief:    "Print the disassembly",
			Description: "Render and print the disassembly listing: every" +
				" subroutine when no address is given, or just the subroutine" +
				" containing <pc>.",
			HelpText: "disassemble [<pc>]",
			Data:     (*Host).cmdDisassemble,
		},
		{
			Name:  "set",
			Brief: "Set a configuration variable",
			Description: "Set the value of a configuration variable. Type the" +
				" set command without a variable name or value to display the" +
				" current values of all configuration variables.",
			HelpText: "set <var> <value>",
			Data:     (*Host).cmdSet,
		},
		{
			Name:        "quit",
			Brief:       "Quit the program",
			Description: "Quit the program.",
			HelpText:    "quit",
			Data:        (*Host).cmdQuit,
		},

		// Aliases for nested commands
		{Name: "ai", Alias: "assert instruction"},
		{Name: "as", Alias: "assert subroutine"},
		{Name: "jtd", Alias: "jumptable define"},
		{Name: "jtl", Alias: "jumptable list"},
		{Name: "ls", Alias: "label set"},
		{Name: "cs", Alias: "comment set"},
	})
}
