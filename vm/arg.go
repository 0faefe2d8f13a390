package vm

// ArgKind discriminates the variant of an Arg.
type ArgKind uint8

const (
	ArgPC ArgKind = iota
	ArgDP
	ArgMP
	ArgDSB
	ArgDST
	ArgCA
	ArgCB
	ArgDS
	ArgMem
	ArgImm
)

// Arg is a discriminated union naming a register, an indirect slot, or an
// immediate value, used as an instruction operand wherever one needs a
// Get/Set-able location.
type Arg struct {
	Kind ArgKind
	Imm  Value
}

// NewArgPC, NewArgDP, ... construct the corresponding Arg variant; used by
// instruction builders and the codec.
func NewArgPC() Arg         { return Arg{Kind: ArgPC} }
func NewArgDP() Arg         { return Arg{Kind: ArgDP} }
func NewArgMP() Arg         { return Arg{Kind: ArgMP} }
func NewArgDSB() Arg        { return Arg{Kind: ArgDSB} }
func NewArgDST() Arg        { return Arg{Kind: ArgDST} }
func NewArgCA() Arg         { return Arg{Kind: ArgCA} }
func NewArgCB() Arg         { return Arg{Kind: ArgCB} }
func NewArgDS() Arg         { return Arg{Kind: ArgDS} }
func NewArgMem() Arg        { return Arg{Kind: ArgMem} }
func NewArgImm(v Value) Arg { return Arg{Kind: ArgImm, Imm: v} }

// Get evaluates the argument against the VM.
func (a Arg) Get(v *VM) Value {
	switch a.Kind {
	case ArgPC:
		return Ptr(v.pc)
	case ArgDP:
		return Ptr(v.dp)
	case ArgMP:
		return Ptr(v.mp)
	case ArgDSB:
		return Ptr(v.dsb)
	case ArgDST:
		return Ptr(uint32(len(v.ds)))
	case ArgCA:
		return v.ca
	case ArgCB:
		return v.cb
	case ArgDS:
		return v.ds[v.dp]
	case ArgMem:
		return v.mem.Get(v.mp)
	case ArgImm:
		return a.Imm
	default:
		return Default()
	}
}

// Set writes value into the argument's target.
func (a Arg) Set(vm *VM, value Value) Status {
	switch a.Kind {
	case ArgPC:
		if value.Tag != TagPtr {
			return NewSetValueInvalidType("cannot set pc to non-pointer value")
		}
		vm.pc = value.p
		return StatusOk
	case ArgDP:
		if value.Tag != TagPtr {
			return NewSetValueInvalidType("cannot set dp to non-pointer value")
		}
		vm.dp = value.p
		return StatusOk
	case ArgMP:
		if value.Tag != TagPtr {
			return NewSetValueInvalidType("cannot set mp to non-pointer value")
		}
		vm.mp = value.p
		return StatusOk
	case ArgDSB:
		if value.Tag != TagPtr {
			return NewSetValueInvalidType("cannot set dsb to " + value.String())
		}
		vm.dsb = value.p
		return StatusOk
	case ArgDST:
		return NewSetValueInvalidTarget("cannot set dst")
	case ArgCA:
		vm.ca = value
		return StatusOk
	case ArgCB:
		vm.cb = value
		return StatusOk
	case ArgDS:
		vm.ds[vm.dp] = value
		return StatusOk
	case ArgMem:
		vm.mem.Set(vm.mp, value)
		return StatusOk
	case ArgImm:
		return NewSetValueInvalidTarget("cannot set immediate value")
	default:
		return StatusInternalError
	}
}

// String renders the canonical lowercase textual form.
func (a Arg) String() string {
	switch a.Kind {
	case ArgPC:
		return "pc"
	case ArgDP:
		return "dp"
	case ArgMP:
		return "mp"
	case ArgDSB:
		return "dsb"
	case ArgDST:
		return "dst"
	case ArgCA:
		return "ca"
	case ArgCB:
		return "cb"
	case ArgDS:
		return "ds"
	case ArgMem:
		return "mem"
	case ArgImm:
		return a.Imm.String()
	default:
		return "<invalid arg>"
	}
}
