package main

import (
	"os"

	"github.com/spf13/cobra"

	"aoivm/vm"
)

var traceOutput bool

var rootCmd = &cobra.Command{
	Use:   "aoi",
	Short: "Run and inspect Aoi virtual machine bytecode",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&traceOutput, "trace", false, "log each executed instruction to stderr")
}

// loadProgram reads and decodes a binary Aoi bytecode file, exiting the
// process with a diagnostic on any failure.
func loadProgram(path string) []vm.Instruction {
	data, err := os.ReadFile(path)
	if err != nil {
		cobra.CheckErr(err)
	}
	program, ok := vm.Deserialize(data)
	if !ok {
		cobra.CheckErr("aoi: malformed bytecode in " + path)
	}
	return program
}

func maybeEnableTrace() {
	if traceOutput {
		vm.SetLogOutput(os.Stderr)
	}
}
