// Command radgo is a small CLI over the rad automatic-differentiation
// engine: it can evaluate an expression, differentiate it, or run the
// dense-net XOR training demo from the training package.
package main

import "github.com/kestrel-labs/radgo/cmd/radgo/cmd"

func main() {
	cmd.Execute()
}
