/*
Command cssed is a command-line host for the stylesheet editor core.

It formats style sheets, prints their document tree, renders them as
GraphViz graphs and replays scripted editing sessions:

	cssed fmt style.css
	cssed tree style.css
	cssed dot style.css | dot -Tsvg > style.svg
	cssed html page.html
	cssed replay session.txt style.css

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/cssed/command"
	"github.com/npillmayer/cssed/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer traces with key 'cssed.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cssed.cli")
}

var configPath string

var conf = config.Default()

// rootCmd is the base command; it carries no action of its own.
var rootCmd = &cobra.Command{
	Use:   "cssed",
	Short: "Structured CSS stylesheet editor",
	Long: `cssed edits CSS style sheets as a tree of rules, at-rules and
declarations. The subcommands expose the editor core on the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			c, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			conf = c
		}
		conf.ApplyTracing()
		tracer().SetTraceLevel(conf.TraceLevel())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.AddCommand(fmtCmd, treeCmd, dotCmd, htmlCmd, replayCmd)
}

// newEditor creates an editor for the configured property table.
func newEditor() (*command.Editor, error) {
	o, err := conf.LoadOracle()
	if err != nil {
		return nil, err
	}
	return command.New(o, conf), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
