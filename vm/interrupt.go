package vm

import "fmt"

// DefaultInterrupt is a ready-to-use Interrupt implementation, ported from
// the Rust reference implementation's AoVM::default_interrupt: interrupt 1
// prints its single argument's textual payload with no trailing newline,
// interrupt 2 prints it followed by a newline, and any other id is a no-op.
// Both ignore Ptr arguments, matching the original.
func DefaultInterrupt(id uint8, args []Value) (Value, bool) {
	switch id {
	case 1:
		if len(args) > 0 {
			printValue(args[0], false)
		}
	case 2:
		if len(args) > 0 {
			printValue(args[0], true)
		}
	}
	return Value{}, false
}

func printValue(v Value, newline bool) {
	switch v.Tag {
	case TagBool, TagInt, TagFloat, TagString:
		if newline {
			fmt.Println(v.plainText())
		} else {
			fmt.Print(v.plainText())
		}
	}
}
