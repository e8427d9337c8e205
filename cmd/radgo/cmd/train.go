package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-labs/radgo/cmd/radgo/internal/config"
	"github.com/kestrel-labs/radgo/internal/radlog"
	"github.com/kestrel-labs/radgo/training"
)

var trainConfigPath string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the dense sigmoid XOR regression demo",
	Long: `Assembles a 2-3-1 dense sigmoid network and trains it on the four XOR
examples with gradient descent and momentum, reporting the running mean
error as training progresses.`,
	Example: fmt.Sprintf(`  %s train
  %s train --config train.yaml`, BinName(), BinName()),
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringVar(&trainConfigPath, "config", "", "Path to a YAML training config file (defaults if omitted)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(trainConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := GetLogger()
	if !verbose {
		// --verbose wins; otherwise honor the config file's log.level.
		log = radlog.New(radlog.ParseLevel(cfg.Log.Level), os.Stdout)
	}

	trainCfg := training.Config{
		Iterations: cfg.Train.Iterations,
		Optimizer: training.Momentum{
			Rate:     cfg.Train.Rate,
			Momentum: cfg.Train.Momentum,
		},
		Seed:     cfg.Train.Seed,
		LogEvery: cfg.Train.LogEvery,
	}

	log.Info("training XOR net: iterations=%d rate=%v momentum=%v seed=%d",
		trainCfg.Iterations, trainCfg.Optimizer.Rate, trainCfg.Optimizer.Momentum, trainCfg.Seed)

	result, err := training.TrainXOR(trainCfg, log)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}

	log.Info("training complete: iterations=%d mean_error=%.6f", result.Iterations, result.MeanError)
	fmt.Printf("mean_error: %.6f\n", result.MeanError)
	return nil
}
