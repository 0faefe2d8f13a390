package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVMPushPopPeek(t *testing.T) {
	v := New(nil)
	require.True(t, v.Push(Int(1)))
	require.True(t, v.Push(Int(2)))

	peeked, ok := v.Peek()
	require.True(t, ok)
	assert.True(t, peeked.Equal(Int(2)))

	popped, ok := v.Pop()
	require.True(t, ok)
	assert.True(t, popped.Equal(Int(2)))
	assert.Equal(t, 1, v.DataStackLen())
}

func TestVMPopUnderflow(t *testing.T) {
	v := New(nil)
	_, ok := v.Pop()
	assert.False(t, ok)
}

func TestVMPushOverflow(t *testing.T) {
	v := New(nil)
	for i := 0; i < maxDataStack; i++ {
		require.True(t, v.Push(Int(0)))
	}
	assert.False(t, v.Push(Int(0)))
}

func TestVMReset(t *testing.T) {
	v := New(nil)
	v.Push(Int(1))
	v.pc, v.dp, v.mp, v.dsb = 1, 2, 3, 4
	v.ca = Int(9)
	v.mem.Set(0, String("x"))

	v.Reset()

	assert.Equal(t, uint32(0), v.pc)
	assert.Equal(t, uint32(0), v.dp)
	assert.Equal(t, uint32(0), v.mp)
	assert.Equal(t, uint32(0), v.dsb)
	assert.True(t, v.ca.Equal(Default()))
	assert.True(t, v.cb.Equal(Default()))
	assert.Equal(t, 0, v.DataStackLen())
	assert.True(t, v.mem.Get(0).Equal(Default()))
}

func TestVMStepPastEndOfProgramExits(t *testing.T) {
	v := New(nil)
	s := v.Step(nil)
	assert.Equal(t, StatusExit, s)
}

func TestVMRunStopsOnFirstNonOkStatus(t *testing.T) {
	v := New(nil)
	program := []Instruction{Nop(), Nop(), Ret()}
	s := v.Run(program)
	assert.Equal(t, CallStackUnderflow, s.Kind)
	assert.Equal(t, uint32(3), v.pc) // pc already advanced past the fetched RET
}

func TestVMSumOneToTen(t *testing.T) {
	// ca accumulates 1+2+...+10 via repeated ADD against an immediate, then
	// an INT 0 halts; a purely register-driven loop stand-in for the
	// "Sum 1..10" scenario that avoids guessing an unverified calling
	// convention.
	v := New(nil)
	program := []Instruction{Mov(NewArgCA(), NewArgImm(Int(0)))}
	for i := 1; i <= 10; i++ {
		program = append(program, Add(NewArgImm(Int(int32(i)))))
	}
	program = append(program, IntOp(0))

	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.Equal(Int(55)))
}

func TestVMCastChain(t *testing.T) {
	v := New(nil)
	program := []Instruction{
		Mov(NewArgCA(), NewArgImm(String("42"))),
		Csi(),
		Csf(),
		Css(),
	}
	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.Equal(String("42")))
}

func TestVMDivisionByZeroPanics(t *testing.T) {
	v := New(nil)
	program := []Instruction{
		Mov(NewArgCA(), NewArgImm(Int(1))),
		Div(NewArgImm(Int(0))),
	}
	assert.Panics(t, func() { v.Run(program) })
}

func TestVMFloatDivisionByZeroIsInf(t *testing.T) {
	v := New(nil)
	program := []Instruction{
		Mov(NewArgCA(), NewArgImm(Float(1))),
		Div(NewArgImm(Float(0))),
		IntOp(0),
	}
	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.AsFloat() > 0 && v.ca.AsFloat()*2 == v.ca.AsFloat()) // +Inf
}

func TestVMJumpRelativeEncoding(t *testing.T) {
	// JMP's displacement is relative to the jump instruction itself: the
	// pc+d-1 formula undoes Step's pre-increment (pc was already advanced
	// past the jump before execute runs it), so d=3 from index 0 (pc=1)
	// lands on index 3, skipping indices 1 and 2.
	v := New(nil)
	program := []Instruction{
		Jmp(3),                             // 0: pc becomes 1, then jumps to 3
		Mov(NewArgCA(), NewArgImm(Int(99))), // 1: skipped
		Nop(),                               // 2: skipped
		Mov(NewArgCA(), NewArgImm(Int(1))),  // 3: landed here
		IntOp(0),                            // 4
	}
	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.Equal(Int(1)))
}

func TestVMConditionalJumpGatedOnTruthiness(t *testing.T) {
	v := New(nil)
	program := []Instruction{
		Mov(NewArgCA(), NewArgImm(Bool(false))),
		Jt(3),
		Mov(NewArgCA(), NewArgImm(Int(1))),
		IntOp(0),
	}
	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.Equal(Int(1)))
}

func TestVMCallRetRoundTrip(t *testing.T) {
	v := New(nil)
	program := []Instruction{
		Call(2),           // 0: call the function at index 2
		IntOp(0),          // 1: exit after returning
		Push(NewArgImm(Ptr(0))), // 2: frame link; dsb restores to 0 on ret
		Cnf(0),            // 3: dsb = len(ds) - 0, i.e. one past the link
		Mov(NewArgCA(), NewArgImm(Int(7))), // 4
		Ret(),             // 5
	}
	s := v.Run(program)
	assert.Equal(t, StatusExit, s)
	assert.True(t, v.ca.Equal(Int(7)))
	assert.Equal(t, uint32(0), v.dsb)
	assert.Equal(t, 0, v.DataStackLen())
}

func TestVMInterruptArgsAndFrameUnwind(t *testing.T) {
	var gotArgs []Value
	interrupt := func(id uint8, args []Value) (Value, bool) {
		gotArgs = append([]Value(nil), args...)
		return Int(int32(id) * 100), true
	}
	v := New(interrupt)
	v.ds = []Value{Ptr(0), Int(1), Int(2)}
	v.dsb = 1

	s := v.execute(IntOp(5))

	require.True(t, s.IsOk())
	require.Len(t, gotArgs, 2)
	assert.True(t, gotArgs[0].Equal(Int(1)))
	assert.True(t, gotArgs[1].Equal(Int(2)))
	assert.True(t, v.ca.Equal(Int(500)))
	assert.Equal(t, uint32(0), v.dsb)
	assert.Equal(t, 0, len(v.ds))
}

func TestUnwindFrameRestoresDSBAndTruncates(t *testing.T) {
	v := New(nil)
	v.ds = []Value{Int(3), Int(4), Ptr(5)}
	v.dsb = 3

	s := v.unwindFrame(false)

	require.True(t, s.IsOk())
	assert.Equal(t, uint32(5), v.dsb)
	assert.Equal(t, 2, len(v.ds))
}

func TestUnwindFrameRejectsNonPtrLink(t *testing.T) {
	v := New(nil)
	v.ds = []Value{Int(1)}
	v.dsb = 1
	assert.Equal(t, StatusBadDataStack, v.unwindFrame(false))
}

func TestUnwindFrameRejectsZeroDSB(t *testing.T) {
	v := New(nil)
	v.dsb = 0
	assert.Equal(t, StatusBadDataStack, v.unwindFrame(false))
}

func TestRetPopsCallStackAndDataStackFrame(t *testing.T) {
	v := New(nil)
	v.cs = []uint32{10}
	v.ds = []Value{Ptr(2)}
	v.dsb = 1
	v.pc = 99

	s := v.execute(Ret())

	require.True(t, s.IsOk())
	assert.Equal(t, uint32(10), v.pc)
	assert.Equal(t, uint32(2), v.dsb)
	assert.Empty(t, v.cs)
	assert.Empty(t, v.ds)
}

func TestRetUnderflowsWithEmptyCallStack(t *testing.T) {
	v := New(nil)
	assert.Equal(t, StatusCallStackUnderflow, v.execute(Ret()))
}

func TestCnfSetsFrameBase(t *testing.T) {
	v := New(nil)
	v.ds = make([]Value, 5)
	s := v.execute(Cnf(2))
	require.True(t, s.IsOk())
	assert.Equal(t, uint32(3), v.dsb)
}

func TestArgOpSetsDPRelativeToFrameBase(t *testing.T) {
	v := New(nil)
	v.dsb = 3
	s := v.execute(ArgI(1))
	require.True(t, s.IsOk())
	assert.Equal(t, uint32(4), v.dp)
}

func TestCallStackOverflow(t *testing.T) {
	v := New(nil)
	for i := 0; i < maxCallStack; i++ {
		require.True(t, v.execute(Call(0)).IsOk())
	}
	assert.Equal(t, StatusCallStackOverflow, v.execute(Call(0)))
}

func TestInterruptZeroExitsWithoutCallingHost(t *testing.T) {
	called := false
	v := New(func(id uint8, args []Value) (Value, bool) {
		called = true
		return Value{}, false
	})
	assert.Equal(t, StatusExit, v.execute(IntOp(0)))
	assert.False(t, called)
}

func TestCompareOpRejectsMismatchedTags(t *testing.T) {
	v := New(nil)
	v.ca = Int(1)
	s := v.execute(Gt(NewArgImm(String("x"))))
	assert.Equal(t, InvalidOperation, s.Kind)
	assert.Equal(t, `1 > "x"`, s.Msg)
}

func TestEquNeqNeverErrorOnMismatchedTags(t *testing.T) {
	v := New(nil)
	v.ca = Int(1)
	require.True(t, v.execute(Equ(NewArgImm(String("1")))).IsOk())
	assert.True(t, v.ca.Equal(Bool(false)))

	v.ca = Int(1)
	require.True(t, v.execute(Neq(NewArgImm(String("1")))).IsOk())
	assert.True(t, v.ca.Equal(Bool(true)))
}
