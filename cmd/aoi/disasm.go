package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file>",
	Short: "Print a bytecode file's canonical disassembly",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func runDisasm(cmd *cobra.Command, args []string) error {
	program := loadProgram(args[0])
	for i, ins := range program {
		fmt.Printf("%04d: %s\n", i, ins)
	}
	return nil
}
