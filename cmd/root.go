// Package cmd implements the conslisp command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/bmatsuo/conslisp/pkg/parser"
	"github.com/bmatsuo/conslisp/pkg/parser/pcparser"
	"github.com/spf13/cobra"
)

// Version is reported by the mcp server.
const Version = "0.1.0"

var (
	rootTrace  bool
	rootReader string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "conslisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter.

Programs can be run from files or the command line, interactively in a repl,
or through an MCP tool server on stdin and stdout.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// interpConfigs returns the interpreter configuration selected by persistent
// flags.
func interpConfigs(extra ...interp.Config) []interp.Config {
	configs := []interp.Config{
		interp.WithTrace(rootTrace),
		withNamedReader(rootReader),
	}
	return append(configs, extra...)
}

func withNamedReader(name string) interp.Config {
	return func(in *interp.Interp) error {
		switch name {
		case "", "rd":
			in.Reader = parser.NewReader()
		case "parsec":
			in.Reader = pcparser.NewReader()
		default:
			return fmt.Errorf("unknown reader: %q", name)
		}
		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootTrace, "trace", false,
		"Log each top-level form and its value to stderr")
	rootCmd.PersistentFlags().StringVar(&rootReader, "reader", "rd",
		"Source reader: rd (recursive descent) or parsec (parser combinators)")
}
