package vm

import "fmt"

// Kind discriminates the outcome of a VM step.
type Kind uint8

const (
	Ok Kind = iota
	Exit
	Return
	BadDataStack
	CallStackOverflow
	CallStackUnderflow
	DataStackOverflow
	DataStackUnderflow
	SetValueInvalidType
	SetValueInvalidTarget
	InvalidOperation
	InternalError
)

// Status is the result of every fallible VM operation. Return carries the
// result of a binary operator internally and never escapes a call to
// Step or Run. Msg carries the diagnostic payload for the message-bearing
// kinds (SetValueInvalidType, SetValueInvalidTarget, InvalidOperation);
// Value carries the payload for Return.
type Status struct {
	Kind  Kind
	Msg   string
	Value Value
}

// StatusOk is the canonical "continue" status.
var StatusOk = Status{Kind: Ok}

// StatusExit is the canonical "program ended normally" status.
var StatusExit = Status{Kind: Exit}

// StatusBadDataStack is returned when a frame-base slot does not hold a Ptr.
var StatusBadDataStack = Status{Kind: BadDataStack}

// StatusCallStackOverflow is returned when CALL would exceed the call stack bound.
var StatusCallStackOverflow = Status{Kind: CallStackOverflow}

// StatusCallStackUnderflow is returned when RET is executed with an empty call stack.
var StatusCallStackUnderflow = Status{Kind: CallStackUnderflow}

// StatusDataStackOverflow is returned when PUSH would exceed the data stack bound.
var StatusDataStackOverflow = Status{Kind: DataStackOverflow}

// StatusDataStackUnderflow is returned when POP is executed with an empty data stack.
var StatusDataStackUnderflow = Status{Kind: DataStackUnderflow}

// StatusInternalError is the catch-all for states that should be unreachable.
var StatusInternalError = Status{Kind: InternalError}

// NewReturn wraps a Value as an internal Return status.
func NewReturn(v Value) Status { return Status{Kind: Return, Value: v} }

// NewSetValueInvalidType builds a SetValueInvalidType status with the given message.
func NewSetValueInvalidType(msg string) Status {
	return Status{Kind: SetValueInvalidType, Msg: msg}
}

// NewSetValueInvalidTarget builds a SetValueInvalidTarget status with the given message.
func NewSetValueInvalidTarget(msg string) Status {
	return Status{Kind: SetValueInvalidTarget, Msg: msg}
}

// NewInvalidOperation builds an InvalidOperation status with the given message.
func NewInvalidOperation(msg string) Status {
	return Status{Kind: InvalidOperation, Msg: msg}
}

// IsOk reports whether the status represents successful step completion.
func (s Status) IsOk() bool { return s.Kind == Ok }

func (s Status) String() string {
	switch s.Kind {
	case Ok:
		return "Ok"
	case Exit:
		return "Exit"
	case Return:
		return fmt.Sprintf("Return(%s)", s.Value)
	case BadDataStack:
		return "Bad Data Stack"
	case CallStackOverflow:
		return "Call Stack Overflow"
	case CallStackUnderflow:
		return "Call Stack Underflow"
	case DataStackOverflow:
		return "Data Stack Overflow"
	case DataStackUnderflow:
		return "Data Stack Underflow"
	case SetValueInvalidType:
		return fmt.Sprintf("Set Value Invalid Type(%s)", s.Msg)
	case SetValueInvalidTarget:
		return fmt.Sprintf("Set Value Invalid Target(%s)", s.Msg)
	case InvalidOperation:
		return fmt.Sprintf("Invalid Operation(%s)", s.Msg)
	case InternalError:
		return "Internal Error"
	default:
		return "Internal Error"
	}
}

// Error satisfies the error interface so a terminal Status can be returned
// or wrapped through ordinary Go error-handling paths by callers that want
// to treat VM termination as an error value.
func (s Status) Error() string { return s.String() }
