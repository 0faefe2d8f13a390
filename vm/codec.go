package vm

import (
	"encoding/binary"
	"errors"
	"math"
	"unicode/utf8"
)

// Arg tag bytes.
const (
	tagArgPC  = 0x01
	tagArgDP  = 0x02
	tagArgMP  = 0x03
	tagArgDSB = 0x11
	tagArgDST = 0x12
	tagArgCA  = 0x21
	tagArgCB  = 0x22
	tagArgDS  = 0xE1
	tagArgMem = 0xE2
	tagArgImm = 0xFF
)

// Typed-value tag bytes.
const (
	tagValBool   = 0x01
	tagValInt    = 0x02
	tagValFloat  = 0x03
	tagValPtr    = 0x04
	tagValString = 0x05
)

// errDecode is returned internally by the decoder helpers; Deserialize
// turns it into a nil program and a false ok.
var errDecode = errors.New("aoivm: decode error")

// Serialize renders a program as a flat concatenation of instruction
// records: opcode_id_u8 || operand_bytes, with no header, length prefix,
// or alignment padding. Encoding is total and never fails.
func Serialize(program []Instruction) []byte {
	out := make([]byte, 0, len(program)*2)
	for _, ins := range program {
		out = appendInstruction(out, ins)
	}
	return out
}

func appendInstruction(out []byte, ins Instruction) []byte {
	out = append(out, byte(ins.Op))
	switch ins.Op {
	case OpNop, OpRet, OpInc, OpDec, OpNot, OpBnot,
		OpCsi, OpCsf, OpCsp, OpCss,
		OpIsb, OpIsi, OpIsf, OpIsp, OpIss:
		// no operands

	case OpCall, OpJmpa, OpJta, OpJfa:
		out = appendU32(out, ins.U32)
	case OpJmp, OpJt, OpJf:
		out = appendI32(out, ins.I32)

	case OpMov:
		out = appendArg(out, ins.Arg1)
		out = appendArg(out, ins.Arg2)
	case OpInt:
		out = append(out, ins.U8)

	case OpPush:
		out = appendArg(out, ins.Arg1)
	case OpPop:
		out = append(out, boolByte(ins.Bool))

	case OpAdd, OpSub, OpMul, OpDiv, OpRem, OpShl, OpShr,
		OpAnd, OpOr, OpXor, OpBand, OpBor, OpBxor,
		OpEqu, OpNeq, OpGt, OpLt, OpGe, OpLe:
		out = appendArg(out, ins.Arg1)

	case OpArg, OpCnf:
		out = appendU32(out, ins.U32)
	}
	return out
}

func appendU32(out []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(out, b[:]...)
}

func appendI32(out []byte, v int32) []byte {
	return appendU32(out, uint32(v))
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

func appendArg(out []byte, a Arg) []byte {
	switch a.Kind {
	case ArgPC:
		return append(out, tagArgPC)
	case ArgDP:
		return append(out, tagArgDP)
	case ArgMP:
		return append(out, tagArgMP)
	case ArgDSB:
		return append(out, tagArgDSB)
	case ArgDST:
		return append(out, tagArgDST)
	case ArgCA:
		return append(out, tagArgCA)
	case ArgCB:
		return append(out, tagArgCB)
	case ArgDS:
		return append(out, tagArgDS)
	case ArgMem:
		return append(out, tagArgMem)
	case ArgImm:
		out = append(out, tagArgImm)
		return appendValue(out, a.Imm)
	default:
		return out
	}
}

func appendValue(out []byte, v Value) []byte {
	switch v.Tag {
	case TagBool:
		out = append(out, tagValBool)
		return append(out, boolByte(v.b))
	case TagInt:
		out = append(out, tagValInt)
		return appendU32(out, uint32(v.i))
	case TagFloat:
		out = append(out, tagValFloat)
		return appendU32(out, math.Float32bits(v.f))
	case TagPtr:
		out = append(out, tagValPtr)
		return appendU32(out, v.p)
	case TagString:
		out = append(out, tagValString)
		out = appendU32(out, uint32(len(v.s)))
		return append(out, v.s...)
	default:
		return out
	}
}

// decoder walks a byte slice left to right, tracking position.
type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) u8() (uint8, error) {
	if d.pos >= len(d.buf) {
		return 0, errDecode
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) u32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, errDecode
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

func (d *decoder) i32() (int32, error) {
	v, err := d.u32()
	return int32(v), err
}

func (d *decoder) boolean() (bool, error) {
	b, err := d.u8()
	if err != nil {
		return false, err
	}
	return b != 0x00, nil
}

func (d *decoder) value() (Value, error) {
	tag, err := d.u8()
	if err != nil {
		return Value{}, err
	}
	switch tag {
	case tagValBool:
		b, err := d.boolean()
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case tagValInt:
		v, err := d.u32()
		if err != nil {
			return Value{}, err
		}
		return Int(int32(v)), nil
	case tagValFloat:
		v, err := d.u32()
		if err != nil {
			return Value{}, err
		}
		return Float(math.Float32frombits(v)), nil
	case tagValPtr:
		v, err := d.u32()
		if err != nil {
			return Value{}, err
		}
		return Ptr(v), nil
	case tagValString:
		n, err := d.u32()
		if err != nil {
			return Value{}, err
		}
		if d.pos+int(n) > len(d.buf) {
			return Value{}, errDecode
		}
		raw := d.buf[d.pos : d.pos+int(n)]
		d.pos += int(n)
		if !utf8.Valid(raw) {
			return Value{}, errDecode
		}
		return String(string(raw)), nil
	default:
		return Value{}, errDecode
	}
}

func (d *decoder) arg() (Arg, error) {
	tag, err := d.u8()
	if err != nil {
		return Arg{}, err
	}
	switch tag {
	case tagArgPC:
		return NewArgPC(), nil
	case tagArgDP:
		return NewArgDP(), nil
	case tagArgMP:
		return NewArgMP(), nil
	case tagArgDSB:
		return NewArgDSB(), nil
	case tagArgDST:
		return NewArgDST(), nil
	case tagArgCA:
		return NewArgCA(), nil
	case tagArgCB:
		return NewArgCB(), nil
	case tagArgDS:
		return NewArgDS(), nil
	case tagArgMem:
		return NewArgMem(), nil
	case tagArgImm:
		v, err := d.value()
		if err != nil {
			return Arg{}, err
		}
		return NewArgImm(v), nil
	default:
		return Arg{}, errDecode
	}
}

func (d *decoder) instruction() (Instruction, error) {
	id, err := d.u8()
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(id)
	switch op {
	case OpNop, OpRet, OpInc, OpDec, OpNot, OpBnot,
		OpCsi, OpCsf, OpCsp, OpCss,
		OpIsb, OpIsi, OpIsf, OpIsp, OpIss:
		return Instruction{Op: op}, nil

	case OpCall, OpJmpa, OpJta, OpJfa:
		v, err := d.u32()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, U32: v}, nil
	case OpJmp, OpJt, OpJf:
		v, err := d.i32()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, I32: v}, nil

	case OpMov:
		a1, err := d.arg()
		if err != nil {
			return Instruction{}, err
		}
		a2, err := d.arg()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Arg1: a1, Arg2: a2}, nil
	case OpInt:
		b, err := d.u8()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, U8: b}, nil

	case OpPush:
		a, err := d.arg()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Arg1: a}, nil
	case OpPop:
		b, err := d.boolean()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Bool: b}, nil

	case OpAdd, OpSub, OpMul, OpDiv, OpRem, OpShl, OpShr,
		OpAnd, OpOr, OpXor, OpBand, OpBor, OpBxor,
		OpEqu, OpNeq, OpGt, OpLt, OpGe, OpLe:
		a, err := d.arg()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Arg1: a}, nil

	case OpArg, OpCnf:
		v, err := d.u32()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, U32: v}, nil

	default:
		return Instruction{}, errDecode
	}
}

// Deserialize decodes a flat byte stream into a program, returning
// (nil, false) on any decode failure: unknown opcode id, unknown Arg tag,
// unknown typed-value tag, a truncated stream, or invalid UTF-8 in a
// String payload.
func Deserialize(data []byte) ([]Instruction, bool) {
	d := &decoder{buf: data}
	var program []Instruction
	for d.pos < len(d.buf) {
		ins, err := d.instruction()
		if err != nil {
			return nil, false
		}
		program = append(program, ins)
	}
	return program, true
}
