package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/radgo/rad"
)

var (
	gradInputs string
	gradMode   string
	gradWrt    int
)

var gradCmd = &cobra.Command{
	Use:   "grad <expr>",
	Short: "Differentiate an infix expression",
	Long: `Parse an infix expression and print its value plus gradient at the given
inputs. --mode backward (the default) computes the full gradient in one
reverse-mode pass; --mode forward computes a single directional derivative
with respect to --wrt via forward-mode accumulation.`,
	Args: cobra.ExactArgs(1),
	Example: fmt.Sprintf(`  %s grad "[0]/([0]*[0] + [1]*[1])" --inputs 3,4
  %s grad "[0]*[0]" --inputs 2 --mode forward --wrt 0`, BinName(), BinName()),
	RunE: runGrad,
}

func init() {
	rootCmd.AddCommand(gradCmd)
	gradCmd.Flags().StringVar(&gradInputs, "inputs", "", "Comma-separated input values, e.g. 2,3")
	gradCmd.Flags().StringVar(&gradMode, "mode", "backward", "Differentiation mode: forward or backward")
	gradCmd.Flags().IntVar(&gradWrt, "wrt", 0, "Input id to differentiate with respect to (forward mode only)")
}

func runGrad(cmd *cobra.Command, args []string) error {
	inputs, err := parseInputs(gradInputs)
	if err != nil {
		return err
	}

	n, err := rad.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}
	defer rad.Discard(n)

	log := GetLogger()
	log.Debug("parsed expression: %s", rad.Print(n))

	switch gradMode {
	case "forward":
		var value float64
		deriv := rad.ForwardDiff(n, inputs, gradWrt, &value)
		fmt.Printf("value: %g\n", value)
		fmt.Printf("d/d[%d]: %g\n", gradWrt, deriv)
	case "backward":
		derivatives := make([]float64, len(inputs))
		var eng rad.Engine
		value := eng.BackwardDiff(n, inputs, derivatives)
		fmt.Printf("value: %g\n", value)
		fmt.Printf("gradient: %v\n", derivatives)
	default:
		return fmt.Errorf("unknown mode %q: want forward or backward", gradMode)
	}
	return nil
}
