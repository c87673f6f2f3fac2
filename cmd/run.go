package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/conslisp/pkg/interp"
	"github.com/bmatsuo/conslisp/pkg/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.  All arguments
are evaluated in order in the same environment.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := interp.New(interpConfigs()...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range args {
			v, err := runSource(in, i, args[i])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if runPrint {
				lisp.Format(in.Stdout, v)
				fmt.Fprintln(in.Stdout)
			}
		}
	},
}

// runSource evaluates a single command line argument.
func runSource(in *interp.Interp, i int, arg string) (lisp.LVal, error) {
	if runExpression {
		return in.LoadString(fmt.Sprintf("expr[%d]", i), arg)
	}
	return in.LoadFile(arg)
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
