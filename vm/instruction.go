package vm

import "fmt"

// Opcode identifies an instruction's operation. Values are fixed 8-bit ids;
// the codec writes/reads this byte as-is.
type Opcode uint8

const (
	OpNop Opcode = 0x00

	OpCall Opcode = 0x10
	OpRet  Opcode = 0x11
	OpJmp  Opcode = 0x12
	OpJmpa Opcode = 0x13
	OpJt   Opcode = 0x14
	OpJta  Opcode = 0x15
	OpJf   Opcode = 0x16
	OpJfa  Opcode = 0x17

	OpMov  Opcode = 0x20
	OpInt  Opcode = 0x21
	OpPush Opcode = 0x22
	OpPop  Opcode = 0x23

	OpAdd Opcode = 0x30
	OpSub Opcode = 0x31
	OpMul Opcode = 0x32
	OpDiv Opcode = 0x33
	OpRem Opcode = 0x34
	OpInc Opcode = 0x35
	OpDec Opcode = 0x36
	OpShl Opcode = 0x37
	OpShr Opcode = 0x38

	OpAnd  Opcode = 0x40
	OpOr   Opcode = 0x41
	OpXor  Opcode = 0x42
	OpNot  Opcode = 0x43
	OpBand Opcode = 0x44
	OpBor  Opcode = 0x45
	OpBxor Opcode = 0x46
	OpBnot Opcode = 0x47

	OpEqu Opcode = 0x50
	OpNeq Opcode = 0x51
	OpGt  Opcode = 0x52
	OpLt  Opcode = 0x53
	OpGe  Opcode = 0x54
	OpLe  Opcode = 0x55

	OpCsi Opcode = 0x61
	OpCsf Opcode = 0x62
	OpCsp Opcode = 0x63
	OpCss Opcode = 0x64

	OpIsb Opcode = 0x68
	OpIsi Opcode = 0x69
	OpIsf Opcode = 0x6A
	OpIsp Opcode = 0x6B
	OpIss Opcode = 0x6C

	OpArg Opcode = 0x70
	OpCnf Opcode = 0x71
)

var opcodeNames = map[Opcode]string{
	OpNop: "nop",

	OpCall: "call", OpRet: "ret", OpJmp: "jmp", OpJmpa: "jmpa",
	OpJt: "jt", OpJta: "jta", OpJf: "jf", OpJfa: "jfa",

	OpMov: "mov", OpInt: "int", OpPush: "push", OpPop: "pop",

	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpRem: "rem",
	OpInc: "inc", OpDec: "dec", OpShl: "shl", OpShr: "shr",

	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpBand: "band", OpBor: "bor", OpBxor: "bxor", OpBnot: "bnot",

	OpEqu: "equ", OpNeq: "neq", OpGt: "gt", OpLt: "lt", OpGe: "ge", OpLe: "le",

	OpCsi: "csi", OpCsf: "csf", OpCsp: "csp", OpCss: "css",
	OpIsb: "isb", OpIsi: "isi", OpIsf: "isf", OpIsp: "isp", OpIss: "iss",

	OpArg: "arg", OpCnf: "cnf",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02X)", uint8(op))
}

// Instruction is an immutable, non-shared instruction record: an opcode
// plus whichever operand shape that opcode requires (none, u8, i32, u32,
// bool, one Arg, or two Args). Only the fields relevant to Op are
// meaningful; unused fields are zero.
type Instruction struct {
	Op Opcode

	U8   uint8
	I32  int32
	U32  uint32
	Bool bool

	Arg1 Arg
	Arg2 Arg
}

// Nop builds a NOP instruction.
func Nop() Instruction { return Instruction{Op: OpNop} }

// Call builds a CALL instruction with an absolute target address.
func Call(addr uint32) Instruction { return Instruction{Op: OpCall, U32: addr} }

// Ret builds a RET instruction.
func Ret() Instruction { return Instruction{Op: OpRet} }

// Jmp builds a JMP instruction with a relative displacement.
func Jmp(d int32) Instruction { return Instruction{Op: OpJmp, I32: d} }

// Jmpa builds a JMPA instruction with an absolute target address.
func Jmpa(a uint32) Instruction { return Instruction{Op: OpJmpa, U32: a} }

// Jt builds a JT instruction with a relative displacement.
func Jt(d int32) Instruction { return Instruction{Op: OpJt, I32: d} }

// Jta builds a JTA instruction with an absolute target address.
func Jta(a uint32) Instruction { return Instruction{Op: OpJta, U32: a} }

// Jf builds a JF instruction with a relative displacement.
func Jf(d int32) Instruction { return Instruction{Op: OpJf, I32: d} }

// Jfa builds a JFA instruction with an absolute target address.
func Jfa(a uint32) Instruction { return Instruction{Op: OpJfa, U32: a} }

// Mov builds a MOV instruction: set(dst, get(src)).
func Mov(dst, src Arg) Instruction { return Instruction{Op: OpMov, Arg1: dst, Arg2: src} }

// IntOp builds an INT instruction with the given interrupt id.
func IntOp(id uint8) Instruction { return Instruction{Op: OpInt, U8: id} }

// Push builds a PUSH instruction.
func Push(src Arg) Instruction { return Instruction{Op: OpPush, Arg1: src} }

// Pop builds a POP instruction; toCA selects whether the popped value is
// also assigned to ca.
func Pop(toCA bool) Instruction { return Instruction{Op: OpPop, Bool: toCA} }

// Add, Sub, Mul, Div, Rem build the arithmetic family: ca := op(ca, get(src)).
func Add(src Arg) Instruction { return Instruction{Op: OpAdd, Arg1: src} }
func Sub(src Arg) Instruction { return Instruction{Op: OpSub, Arg1: src} }
func Mul(src Arg) Instruction { return Instruction{Op: OpMul, Arg1: src} }
func Div(src Arg) Instruction { return Instruction{Op: OpDiv, Arg1: src} }
func Rem(src Arg) Instruction { return Instruction{Op: OpRem, Arg1: src} }

// Inc, Dec build the Int/Float increment/decrement pair.
func Inc() Instruction { return Instruction{Op: OpInc} }
func Dec() Instruction { return Instruction{Op: OpDec} }

// Shl, Shr build the Int-only bit-shift pair.
func Shl(src Arg) Instruction { return Instruction{Op: OpShl, Arg1: src} }
func Shr(src Arg) Instruction { return Instruction{Op: OpShr, Arg1: src} }

// And, Or, Xor, Not build the Bool-only logical family.
func And(src Arg) Instruction { return Instruction{Op: OpAnd, Arg1: src} }
func Or(src Arg) Instruction  { return Instruction{Op: OpOr, Arg1: src} }
func Xor(src Arg) Instruction { return Instruction{Op: OpXor, Arg1: src} }
func Not() Instruction        { return Instruction{Op: OpNot} }

// Band, Bor, Bxor, Bnot build the Int-only bitwise family.
func Band(src Arg) Instruction { return Instruction{Op: OpBand, Arg1: src} }
func Bor(src Arg) Instruction  { return Instruction{Op: OpBor, Arg1: src} }
func Bxor(src Arg) Instruction { return Instruction{Op: OpBxor, Arg1: src} }
func Bnot() Instruction        { return Instruction{Op: OpBnot} }

// Equ, Neq, Gt, Lt, Ge, Le build the comparison family.
func Equ(src Arg) Instruction { return Instruction{Op: OpEqu, Arg1: src} }
func Neq(src Arg) Instruction { return Instruction{Op: OpNeq, Arg1: src} }
func Gt(src Arg) Instruction  { return Instruction{Op: OpGt, Arg1: src} }
func Lt(src Arg) Instruction  { return Instruction{Op: OpLt, Arg1: src} }
func Ge(src Arg) Instruction  { return Instruction{Op: OpGe, Arg1: src} }
func Le(src Arg) Instruction  { return Instruction{Op: OpLe, Arg1: src} }

// Csi, Csf, Csp, Css build the type-cast family, operating on ca.
func Csi() Instruction { return Instruction{Op: OpCsi} }
func Csf() Instruction { return Instruction{Op: OpCsf} }
func Csp() Instruction { return Instruction{Op: OpCsp} }
func Css() Instruction { return Instruction{Op: OpCss} }

// Isb, Isi, Isf, Isp, Iss build the type-predicate family, operating on ca.
func Isb() Instruction { return Instruction{Op: OpIsb} }
func Isi() Instruction { return Instruction{Op: OpIsi} }
func Isf() Instruction { return Instruction{Op: OpIsf} }
func Isp() Instruction { return Instruction{Op: OpIsp} }
func Iss() Instruction { return Instruction{Op: OpIss} }

// ArgI builds an ARG instruction: dp := dsb + off.
func ArgI(off uint32) Instruction { return Instruction{Op: OpArg, U32: off} }

// Cnf builds a CNF instruction: dsb := |ds| - argc.
func Cnf(argc uint32) Instruction { return Instruction{Op: OpCnf, U32: argc} }

// String renders the canonical disassembled form: lowercase mnemonic,
// comma-separated operands with no space after the comma.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpNop, OpRet, OpInc, OpDec, OpNot, OpBnot,
		OpCsi, OpCsf, OpCsp, OpCss,
		OpIsb, OpIsi, OpIsf, OpIsp, OpIss:
		return ins.Op.String()
	case OpPop:
		if ins.Bool {
			return "pop ca"
		}
		return "pop"
	case OpCall:
		return fmt.Sprintf("call %d", ins.U32)
	case OpJmpa, OpJta, OpJfa:
		return fmt.Sprintf("%s %d", ins.Op, ins.U32)
	case OpJmp, OpJt, OpJf:
		return fmt.Sprintf("%s %d", ins.Op, ins.I32)
	case OpMov:
		return fmt.Sprintf("mov %s,%s", ins.Arg1, ins.Arg2)
	case OpInt:
		return fmt.Sprintf("int %d", ins.U8)
	case OpPush, OpAdd, OpSub, OpMul, OpDiv, OpRem, OpShl, OpShr,
		OpAnd, OpOr, OpXor, OpBand, OpBor, OpBxor,
		OpEqu, OpNeq, OpGt, OpLt, OpGe, OpLe:
		return fmt.Sprintf("%s %s", ins.Op, ins.Arg1)
	case OpArg, OpCnf:
		return fmt.Sprintf("%s %d", ins.Op, ins.U32)
	default:
		return ins.Op.String()
	}
}
