package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionDisassembly(t *testing.T) {
	cases := []struct {
		ins  Instruction
		want string
	}{
		{Nop(), "nop"},
		{Call(10), "call 10"},
		{Ret(), "ret"},
		{Jmp(-3), "jmp -3"},
		{Jmpa(10), "jmpa 10"},
		{Mov(NewArgCA(), NewArgImm(Int(1))), "mov ca,1"},
		{IntOp(2), "int 2"},
		{Push(NewArgCA()), "push ca"},
		{Pop(false), "pop"},
		{Pop(true), "pop ca"},
		{Add(NewArgCB()), "add cb"},
		{Inc(), "inc"},
		{Not(), "not"},
		{Csi(), "csi"},
		{Isi(), "isi"},
		{ArgI(1), "arg 1"},
		{Cnf(2), "cnf 2"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.ins.String())
	}
}

func TestOpcodeStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown(0xAB)", Opcode(0xAB).String())
}
