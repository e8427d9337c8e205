// Package training assembles and trains the dense sigmoid network used as
// the XOR regression demo in original_source/neurons.c: an input layer, one
// or more fully-connected layers each wrapped in a shared sigmoid
// activation via rad.Composition, a mean-squared-error loss, and a
// gradient-descent-with-momentum optimizer. It is a collaborator of the
// core rad package, never the reverse — training imports rad, not vice versa.
package training

import (
	"math"

	"github.com/kestrel-labs/radgo/rad"
)

// NewInputLayer builds numNeurons INPUT nodes reading a contiguous block of
// the dense input vector starting at inputStart — a direct port of
// original_source/neurons.c's input_layer.
func NewInputLayer(numNeurons, inputStart int) []*rad.Node {
	out := make([]*rad.Node, numNeurons)
	for i := range out {
		out[i] = rad.Input(i + inputStart)
	}
	return out
}

// expPositive is exp(x), the CUSTOM callback original_source/neurons.c calls
// custom_exp: *grad = exp(*input); return *grad.
func expPositive(in, grad []float64) float64 {
	v := math.Exp(in[0])
	grad[0] = v
	return v
}

// NewSigmoidActivation builds the single-variable sigmoid graph
// "1/(1 + {0})" spliced with a CUSTOM exp(-x) sub-graph, exactly the
// construction original_source/neurons.c's main performs before training:
//
//	activation = rad_parse("1/(1 + {0})", rad_custom(custom_exp, 1, rad_parse("0.0 - [0]")))
//
// The returned handle is shared (via rad.Copy) once per neuron by
// NewDenseLayer and must be discarded exactly once by the caller after every
// layer that uses it has been built.
func NewSigmoidActivation() (*rad.Node, error) {
	negation, err := rad.Parse("0.0 - [0]")
	if err != nil {
		return nil, err
	}
	expNeg := rad.Custom(expPositive, []*rad.Node{negation})
	return rad.Parse("1/(1 + {0})", expNeg)
}

// NewDenseLayer builds numNeurons fully-connected neurons over prev, each a
// weighted sum of every prev[j] plus a bias input, wrapped in
// rad.Composition(rad.Copy(activation), [sum]) — a direct port of
// original_source/neurons.c's new_layer. Weight/bias values live at
// successive INPUT ids starting at *parameter, which is advanced by
// len(prev)+1 per neuron (matching the C reference's `++*parameter`
// bookkeeping). prev is consumed (each handle discarded exactly once, after
// every neuron has taken its own copies); activation is borrowed, not
// consumed — the caller owns and must discard its original handle.
func NewDenseLayer(numNeurons int, activation *rad.Node, prev []*rad.Node, parameter *int) []*rad.Node {
	out := make([]*rad.Node, numNeurons)
	for i := 0; i < numNeurons; i++ {
		sum := rad.Mul(rad.Copy(prev[0]), rad.Input(*parameter))
		(*parameter)++
		for j := 1; j < len(prev); j++ {
			sum = rad.Add(sum, rad.Mul(rad.Copy(prev[j]), rad.Input(*parameter)))
			(*parameter)++
		}
		sum = rad.Add(sum, rad.Input(*parameter))
		(*parameter)++
		out[i] = rad.Composition(rad.Copy(activation), []*rad.Node{sum})
	}

	for _, p := range prev {
		rad.Discard(p)
	}
	return out
}

// MeanSquaredError builds Σ (outputs[i] - input(targetStart+i))² — a direct
// port of original_source/neurons.c's net_error, generalized from a single
// hard-coded target at input(0) to an arbitrary contiguous block of target
// inputs. outputs is borrowed, not consumed (matching net_error's own
// "/*not consumed*/" contract) — each element is Copy'd before use, so the
// caller still owes exactly one Discard per element of outputs.
func MeanSquaredError(outputs []*rad.Node, targetStart int) *rad.Node {
	diff := rad.Sub(rad.Copy(outputs[0]), rad.Input(targetStart))
	total := rad.Mul(rad.Copy(diff), diff)
	for i := 1; i < len(outputs); i++ {
		diff = rad.Sub(rad.Copy(outputs[i]), rad.Input(targetStart+i))
		sq := rad.Mul(rad.Copy(diff), diff)
		total = rad.Add(total, sq)
	}
	return total
}
