package vm

// execute dispatches a single already-fetched instruction. pc has already
// been advanced past ins by Step; jump/call/ret opcodes mutate pc again as
// needed.
func (vm *VM) execute(ins Instruction) Status {
	switch ins.Op {
	case OpNop:
		return StatusOk

	case OpCall:
		if len(vm.cs) >= maxCallStack {
			return StatusCallStackOverflow
		}
		vm.cs = append(vm.cs, vm.pc)
		vm.pc = ins.U32
		return StatusOk

	case OpRet:
		if len(vm.cs) == 0 {
			return StatusCallStackUnderflow
		}
		return vm.unwindFrame(true)

	case OpJmp:
		vm.pc = uint32(int64(vm.pc) + int64(ins.I32) - 1)
		return StatusOk
	case OpJmpa:
		vm.pc = ins.U32
		return StatusOk
	case OpJt:
		if truthy(vm.ca) {
			vm.pc = uint32(int64(vm.pc) + int64(ins.I32) - 1)
		}
		return StatusOk
	case OpJta:
		if truthy(vm.ca) {
			vm.pc = ins.U32
		}
		return StatusOk
	case OpJf:
		if !truthy(vm.ca) {
			vm.pc = uint32(int64(vm.pc) + int64(ins.I32) - 1)
		}
		return StatusOk
	case OpJfa:
		if !truthy(vm.ca) {
			vm.pc = ins.U32
		}
		return StatusOk

	case OpMov:
		return ins.Arg1.Set(vm, ins.Arg2.Get(vm))

	case OpInt:
		return vm.execInterrupt(ins.U8)

	case OpPush:
		if !vm.Push(ins.Arg1.Get(vm)) {
			return StatusDataStackOverflow
		}
		return StatusOk
	case OpPop:
		v, ok := vm.Pop()
		if !ok {
			return StatusDataStackUnderflow
		}
		if ins.Bool {
			vm.ca = v
		}
		return StatusOk

	case OpAdd:
		return vm.applyToCA(applyAdd, ins.Arg1)
	case OpSub:
		return vm.applyToCA(applySub, ins.Arg1)
	case OpMul:
		return vm.applyToCA(applyMul, ins.Arg1)
	case OpDiv:
		return vm.applyToCA(applyDiv, ins.Arg1)
	case OpRem:
		return vm.applyToCA(applyRem, ins.Arg1)

	case OpInc:
		v, s := applyInc(vm.ca)
		if s.Kind != Ok {
			return s
		}
		vm.ca = v
		return StatusOk
	case OpDec:
		v, s := applyDec(vm.ca)
		if s.Kind != Ok {
			return s
		}
		vm.ca = v
		return StatusOk

	case OpShl:
		return vm.applyToCA(applyShl, ins.Arg1)
	case OpShr:
		return vm.applyToCA(applyShr, ins.Arg1)

	case OpAnd:
		return vm.boolOp(ins.Arg1, "&&", func(l, r bool) bool { return l && r })
	case OpOr:
		return vm.boolOp(ins.Arg1, "||", func(l, r bool) bool { return l || r })
	case OpXor:
		return vm.boolOp(ins.Arg1, "^", func(l, r bool) bool { return l != r })
	case OpNot:
		v, s := applyNot(vm.ca)
		if s.Kind != Ok {
			return s
		}
		vm.ca = v
		return StatusOk

	case OpBand:
		return vm.applyToCA(applyBand, ins.Arg1)
	case OpBor:
		return vm.applyToCA(applyBor, ins.Arg1)
	case OpBxor:
		return vm.applyToCA(applyBxor, ins.Arg1)
	case OpBnot:
		v, s := applyBnot(vm.ca)
		if s.Kind != Ok {
			return s
		}
		vm.ca = v
		return StatusOk

	case OpEqu:
		vm.ca = Bool(sameTagEqual(vm.ca, ins.Arg1.Get(vm)))
		return StatusOk
	case OpNeq:
		vm.ca = Bool(!sameTagEqual(vm.ca, ins.Arg1.Get(vm)))
		return StatusOk
	case OpGt:
		return vm.compareOp(ins.Arg1, func(l, r Value) bool { return r.Less(l) }, ">")
	case OpLt:
		return vm.compareOp(ins.Arg1, func(l, r Value) bool { return l.Less(r) }, "<")
	case OpGe:
		return vm.compareOp(ins.Arg1, func(l, r Value) bool { return !l.Less(r) }, ">=")
	case OpLe:
		return vm.compareOp(ins.Arg1, func(l, r Value) bool { return !r.Less(l) }, "<=")

	case OpCsi:
		vm.ca = CastToInt(vm.ca)
		return StatusOk
	case OpCsf:
		vm.ca = CastToFloat(vm.ca)
		return StatusOk
	case OpCsp:
		vm.ca = CastToPtr(vm.ca)
		return StatusOk
	case OpCss:
		vm.ca = CastToString(vm.ca)
		return StatusOk

	case OpIsb:
		vm.ca = IsBool(vm.ca)
		return StatusOk
	case OpIsi:
		vm.ca = IsInt(vm.ca)
		return StatusOk
	case OpIsf:
		vm.ca = IsFloat(vm.ca)
		return StatusOk
	case OpIsp:
		vm.ca = IsPtr(vm.ca)
		return StatusOk
	case OpIss:
		vm.ca = IsString(vm.ca)
		return StatusOk

	case OpArg:
		vm.dp = vm.dsb + ins.U32
		return StatusOk
	case OpCnf:
		vm.dsb = uint32(len(vm.ds)) - ins.U32
		return StatusOk

	default:
		return StatusInternalError
	}
}

// truthy reports a value's truthiness: the Bool payload for Bool, nonzero
// for Int/Float, false for everything else.
func truthy(v Value) bool {
	switch v.Tag {
	case TagBool:
		return v.b
	case TagInt:
		return v.i != 0
	case TagFloat:
		return v.f != 0
	default:
		return false
	}
}

// applyToCA runs a binary operator with ca as the left operand and
// get(src) as the right, assigning the result back to ca on success.
func (vm *VM) applyToCA(op func(l, r Value) Status, src Arg) Status {
	res := op(vm.ca, src.Get(vm))
	if res.Kind != Return {
		return res
	}
	vm.ca = res.Value
	return StatusOk
}

// boolOp implements the Bool-only AND/OR/XOR family: both operands must be
// Bool or the instruction fails with InvalidOperation using the given
// infix symbol in the diagnostic message.
func (vm *VM) boolOp(src Arg, symbol string, fn func(l, r bool) bool) Status {
	left := vm.ca
	right := src.Get(vm)
	if left.Tag != TagBool || right.Tag != TagBool {
		return NewInvalidOperation(left.String() + " " + symbol + " " + right.String())
	}
	vm.ca = Bool(fn(left.b, right.b))
	return StatusOk
}

// sameTagEqual implements EQU/NEQ's same-tag comparison: mismatched tags
// are never an error, just unequal.
func sameTagEqual(left, right Value) bool {
	if left.Tag != right.Tag {
		return false
	}
	return left.Equal(right)
}

// compareOp implements the GT/LT/GE/LE family: same-tag ordering via the
// supplied predicate, InvalidOperation on any tag mismatch.
func (vm *VM) compareOp(src Arg, pred func(l, r Value) bool, symbol string) Status {
	left := vm.ca
	right := src.Get(vm)
	if left.Tag != right.Tag {
		return NewInvalidOperation(left.String() + " " + symbol + " " + right.String())
	}
	vm.ca = Bool(pred(left, right))
	return StatusOk
}

// unwindFrame implements the shared dsb-1 frame-base protocol used by both
// RET and the post-interrupt unwind: the slot at dsb-1 must hold a Ptr to
// the caller's dsb; dsb is restored from it and ds is truncated to that
// slot. When popPC is true (RET only), the call stack also supplies the
// return address.
func (vm *VM) unwindFrame(popPC bool) Status {
	if vm.dsb == 0 {
		return StatusBadDataStack
	}
	slot := vm.dsb - 1
	saved := vm.ds[slot]
	if saved.Tag != TagPtr {
		return StatusBadDataStack
	}
	vm.dsb = saved.p
	vm.ds = vm.ds[:slot]
	if popPC {
		n := len(vm.cs)
		vm.pc = vm.cs[n-1]
		vm.cs = vm.cs[:n-1]
	}
	return StatusOk
}

// execInterrupt implements INT. id == 0 means "exit" and is handled before
// the callback fires. Otherwise the callback receives a snapshot of
// ds[dsb:] in push order; a returned value overwrites ca. The frame is
// then unwound exactly as RET does, without touching cs or pc.
func (vm *VM) execInterrupt(id uint8) Status {
	if id == 0 {
		return StatusExit
	}

	args := make([]Value, len(vm.ds)-int(vm.dsb))
	copy(args, vm.ds[vm.dsb:])

	if v, ok := vm.interrupt(id, args); ok {
		vm.ca = v
	}

	return vm.unwindFrame(false)
}
