package main

import (
	"fmt"
	"os"

	"github.com/aeolab/windfarm-rl-train/benchmarks"
)

// main entry point to all the training runs
func main() {
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
