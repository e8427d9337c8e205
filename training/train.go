package training

import (
	"fmt"
	"math/rand"

	"github.com/kestrel-labs/radgo/rad"
	"github.com/kestrel-labs/radgo/internal/radlog"
)

// Momentum is a gradient-descent-with-momentum optimizer matching
// original_source/neurons.c's rad_teach:
//
//	derivs[i] *= momentum
//	error = rad_backward_diff(error_func, parameters, derivs)
//	parameters[i] -= derivs[i]*rate
//
// applied only to the trainable parameter block [parameterStart, len), where
// parameterStart is the argument passed to Step.
type Momentum struct {
	Rate     float64
	Momentum float64
}

// DefaultMomentum matches neurons.c's literal constants: step size 0.05,
// momentum factor 0.75.
func DefaultMomentum() Momentum {
	return Momentum{Rate: 0.05, Momentum: 0.75}
}

// Step runs one training iteration: scales the running derivative estimate
// by the momentum factor, performs one reverse-mode pass over errorFunc, and
// applies the resulting (momentum-blended) gradient to parameters. It
// returns the loss value from this iteration's forward pass.
func (m Momentum) Step(eng *rad.Engine, errorFunc *rad.Node, parameters, derivatives []float64, parameterStart int) float64 {
	for i := parameterStart; i < len(derivatives); i++ {
		derivatives[i] *= m.Momentum
	}
	errorValue := eng.BackwardDiff(errorFunc, parameters, derivatives)
	for i := parameterStart; i < len(parameters); i++ {
		parameters[i] -= derivatives[i] * m.Rate
	}
	return errorValue
}

// Config parameterizes TrainXOR. TrainXOR itself reserves the first few
// input slots (target, x0, x1) before the trainable weight block begins at
// parameterBase, mirroring neurons.c.
type Config struct {
	Iterations   int
	Optimizer    Momentum
	Seed         int64
	LogEvery     int
}

// DefaultConfig matches original_source/neurons.c's main: 100000 iterations,
// step 0.05, momentum 0.75.
func DefaultConfig() Config {
	return Config{Iterations: 100000, Optimizer: DefaultMomentum(), Seed: 1, LogEvery: 10000}
}

// Result summarizes a finished training run.
type Result struct {
	FinalError    float64
	MeanError     float64
	Iterations    int
	Parameters    []float64
}

const (
	targetInputID = 0
	x0InputID     = 1
	x1InputID     = 2
	parameterBase = 3
)

// TrainXOR assembles a 2-3-1 dense sigmoid network (2 inputs, one hidden
// layer of 3 neurons, one output neuron), trains it on the four XOR examples
// with cfg.Optimizer, and reports the running mean error — the scenario
// spec.md §8 names as the system's end-to-end regression test.
func TrainXOR(cfg Config, logger radlog.Logger) (Result, error) {
	layer0 := NewInputLayer(2, x0InputID)
	activation, err := NewSigmoidActivation()
	if err != nil {
		return Result{}, fmt.Errorf("building activation: %w", err)
	}

	parameter := parameterBase
	layer1 := NewDenseLayer(3, activation, layer0, &parameter)
	layer2 := NewDenseLayer(1, activation, layer1, &parameter)
	rad.Discard(activation)

	errorFunc := MeanSquaredError(layer2, targetInputID)
	defer rad.Discard(errorFunc)
	for _, n := range layer2 {
		defer rad.Discard(n)
	}

	numParameters := parameter
	parameters := make([]float64, numParameters)
	derivatives := make([]float64, numParameters)

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := parameterBase; i < numParameters; i++ {
		parameters[i] = rng.Float64()
	}

	var eng rad.Engine
	var runningError float64
	for i := 0; i < cfg.Iterations; i++ {
		x0 := rng.Intn(2)
		x1 := rng.Intn(2)
		target := 0.0
		if x0 != x1 {
			target = 1.0
		}
		parameters[targetInputID] = target
		parameters[x0InputID] = float64(x0)
		parameters[x1InputID] = float64(x1)

		errorValue := cfg.Optimizer.Step(&eng, errorFunc, parameters, derivatives, parameterBase)
		runningError += (errorValue - runningError) / float64(i+1)

		if logger != nil && cfg.LogEvery > 0 && (i+1)%cfg.LogEvery == 0 {
			logger.Info("iteration %d: error=%.6f mean_error=%.6f", i+1, errorValue, runningError)
		}
	}

	return Result{
		FinalError: runningError,
		MeanError:  runningError,
		Iterations: cfg.Iterations,
		Parameters: append([]float64(nil), parameters...),
	}, nil
}
