package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aoivm/vm"
)

var stepCmd = &cobra.Command{
	Use:   "step <file>",
	Short: "Single-step a bytecode file with an interactive debugger",
	Args:  cobra.ExactArgs(1),
	RunE:  runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)
}

// runStep implements a small REPL over a program: n/next executes one
// instruction, r/run free-runs to completion (honoring breakpoints), b/break
// <line> toggles a breakpoint, and anything else reprints the prompt.
func runStep(cmd *cobra.Command, args []string) error {
	program := loadProgram(args[0])
	vm.SetLogOutput(os.Stdout)
	machine := vm.New(nil)

	fmt.Println("Commands:\n\tn or next: execute next instruction\n\tr or run: run to completion or breakpoint\n\tb or break <line>: toggle a breakpoint\n\tq or quit: exit")
	printState(machine)

	reader := bufio.NewReader(os.Stdin)
	breakpoints := make(map[int]struct{})
	running := false

	for {
		line := ""
		if !running {
			fmt.Print("\n-> ")
			line, _ = reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))
		}

		switch {
		case line == "q" || line == "quit":
			return nil

		case running || line == "n" || line == "next":
			status := machine.StepTraced(program)
			printState(machine)
			if status.Kind != vm.Ok {
				fmt.Println(status)
				return nil
			}
			if running {
				if _, ok := breakpoints[int(machine.PC())]; ok {
					fmt.Println("breakpoint")
					running = false
				}
			}

		case line == "r" || line == "run":
			running = true

		case strings.HasPrefix(line, "b"):
			toggleBreakpoint(breakpoints, line)

		}
	}
}

func toggleBreakpoint(breakpoints map[int]struct{}, line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Println("usage: break <line>")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Println("unknown line number:", err)
		return
	}
	if _, ok := breakpoints[n]; ok {
		delete(breakpoints, n)
	} else {
		breakpoints[n] = struct{}{}
	}
}

func printState(machine *vm.VM) {
	fmt.Printf("pc=%d dp=%d mp=%d dsb=%d ca=%s cb=%s |ds|=%d\n",
		machine.PC(), machine.DP(), machine.MP(), machine.DSB(),
		machine.CA(), machine.CB(), machine.DataStackLen())
}
