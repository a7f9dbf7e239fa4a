package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/cssed/command"
	"github.com/npillmayer/cssed/cssdoc/docdbg"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Normalize and pretty-print a style sheet",
	Long: `Reads a style sheet from a file or from stdin and prints it in
normalized form. Empty declarations and rules are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := load(args)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), ed.Export())
		return err
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Print the document tree of a style sheet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := load(args)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), docdbg.Dump(ed.Document()))
		return err
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot [file]",
	Short: "Render the document tree of a style sheet in GraphViz DOT format",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := load(args)
		if err != nil {
			return err
		}
		docdbg.ToGraphViz(ed.Document(), cmd.OutOrStdout())
		return nil
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html [file]",
	Short: "Extract and format the <style> elements of an HTML page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := input(args)
		if err != nil {
			return err
		}
		defer r.Close()
		ed, err := newEditor()
		if err != nil {
			return err
		}
		if err = ed.ImportHTML(r); err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), ed.Export())
		return err
	},
}

var showTree bool

var replayCmd = &cobra.Command{
	Use:   "replay script [file]",
	Short: "Replay an editing session on a style sheet",
	Long: `Replays a script of editing intents on a style sheet (or on the
default document, if no file is given) and prints the result.

A script holds one intent per line:

  type <text>          insert text at the cursor
  pick <index>         pick a suggestion
  select <path>:<off>  place the cursor, e.g. "select 0,1,0,0:3"
  <key chord>          e.g. "Enter" or "Ctrl+Shift+Enter"

Lines starting with '#' are comments.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		intents, err := command.ParseScript(f, command.DefaultKeyMap())
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		var ed *command.Editor
		if len(args) > 1 {
			ed, err = load(args[1:])
		} else {
			ed, err = newEditor()
		}
		if err != nil {
			return err
		}
		for _, in := range intents {
			consumed := ed.Dispatch(in)
			tracer().Debugf("%v consumed=%v, selection %v", in, consumed, ed.Selection())
		}
		out := cmd.OutOrStdout()
		if showTree {
			_, err = io.WriteString(out, docdbg.Dump(ed.Document()))
			return err
		}
		_, err = io.WriteString(out, ed.Export())
		return err
	},
}

func init() {
	replayCmd.Flags().BoolVar(&showTree, "tree", false, "print the document tree instead of CSS")
}

// input opens the file named in args, or stdin.
func input(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}

// load creates an editor on the style sheet named in args.
func load(args []string) (*command.Editor, error) {
	r, err := input(args)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ed, err := newEditor()
	if err != nil {
		return nil, err
	}
	if err = ed.Import(string(src)); err != nil {
		return nil, err
	}
	return ed, nil
}
