package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/radgo/rad"
)

var evalInputs string

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Parse and evaluate an infix expression",
	Long: `Parse an infix expression over [0], [1], ... placeholders and print its
value at the given inputs.`,
	Args: cobra.ExactArgs(1),
	Example: fmt.Sprintf(`  %s eval "[0]*[0] + [0]*[1]" --inputs 2,3`, BinName()),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalInputs, "inputs", "", "Comma-separated input values, e.g. 2,3")
}

func runEval(cmd *cobra.Command, args []string) error {
	inputs, err := parseInputs(evalInputs)
	if err != nil {
		return err
	}

	n, err := rad.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}
	defer rad.Discard(n)

	value := rad.Eval(n, inputs)
	GetLogger().Debug("parsed expression: %s", rad.Print(n))
	fmt.Printf("%g\n", value)
	return nil
}
