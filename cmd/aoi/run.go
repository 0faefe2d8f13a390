package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aoivm/vm"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a bytecode file to completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	maybeEnableTrace()
	program := loadProgram(args[0])

	machine := vm.New(nil)
	// StepTraced logs through vm.Logger, which discards output unless
	// --trace redirected it.
	var status vm.Status
	for {
		status = machine.StepTraced(program)
		if status.Kind != vm.Ok {
			break
		}
	}

	if status.Kind != vm.Exit {
		fmt.Fprintf(os.Stderr, "aoi: halted: %s\n", status)
		os.Exit(1)
	}
	return nil
}
