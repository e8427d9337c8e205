//go:build xor_full

package training

import "testing"

// TestTrainXORConvergesFullScale reproduces spec.md §8 scenario 8 literally:
// 10^5 iterations, step 0.05, 0.75x momentum, mean error below 0.05. It is
// gated behind the xor_full build tag because 10^5 iterations of a 2-3-1
// network is too slow for a default `go test` run.
func TestTrainXORConvergesFullScale(t *testing.T) {
	result, err := TrainXOR(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("TrainXOR: %v", err)
	}
	if result.MeanError >= 0.05 {
		t.Fatalf("mean error = %v, want < 0.05 after %d iterations", result.MeanError, result.Iterations)
	}
}
