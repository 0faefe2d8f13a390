package vm

import "strconv"

// applyAdd, applySub, ... dispatch to the binary operator of the same name.
func applyAdd(l, r Value) Status  { return opAdd.apply(l, r) }
func applySub(l, r Value) Status  { return opSub.apply(l, r) }
func applyMul(l, r Value) Status  { return opMul.apply(l, r) }
func applyDiv(l, r Value) Status  { return opDiv.apply(l, r) }
func applyRem(l, r Value) Status  { return opRem.apply(l, r) }
func applyBand(l, r Value) Status { return opBand.apply(l, r) }
func applyBor(l, r Value) Status  { return opBor.apply(l, r) }
func applyBxor(l, r Value) Status { return opBxor.apply(l, r) }
func applyShl(l, r Value) Status  { return opShl.apply(l, r) }
func applyShr(l, r Value) Status  { return opShr.apply(l, r) }

// applyNot implements unary logical negation, Bool only.
func applyNot(v Value) (Value, Status) {
	if v.Tag != TagBool {
		return Value{}, NewInvalidOperation("!" + v.String())
	}
	return Bool(!v.b), StatusOk
}

// applyBnot implements unary bitwise complement, Int only.
func applyBnot(v Value) (Value, Status) {
	if v.Tag != TagInt {
		return Value{}, NewInvalidOperation("~" + v.String())
	}
	return Int(^v.i), StatusOk
}

// applyInc implements INC: Int or Float only.
func applyInc(v Value) (Value, Status) {
	switch v.Tag {
	case TagInt:
		return Int(v.i + 1), StatusOk
	case TagFloat:
		return Float(v.f + 1), StatusOk
	default:
		return Value{}, NewInvalidOperation("inc " + v.String())
	}
}

// applyDec implements DEC: Int or Float only.
func applyDec(v Value) (Value, Status) {
	switch v.Tag {
	case TagInt:
		return Int(v.i - 1), StatusOk
	case TagFloat:
		return Float(v.f - 1), StatusOk
	default:
		return Value{}, NewInvalidOperation("dec " + v.String())
	}
}

// CastToInt implements CSI: the total mapping to Int.
func CastToInt(v Value) Value {
	switch v.Tag {
	case TagBool:
		if v.b {
			return Int(1)
		}
		return Int(0)
	case TagInt:
		return v
	case TagFloat:
		return Int(int32(v.f))
	case TagPtr:
		return Int(int32(v.p))
	case TagString:
		n, err := strconv.ParseInt(v.s, 10, 32)
		if err != nil {
			return Int(0)
		}
		return Int(int32(n))
	default:
		return Int(0)
	}
}

// CastToFloat implements CSF: the total mapping to Float.
func CastToFloat(v Value) Value {
	switch v.Tag {
	case TagBool:
		if v.b {
			return Float(1)
		}
		return Float(0)
	case TagInt:
		return Float(float32(v.i))
	case TagFloat:
		return v
	case TagPtr:
		return Float(float32(v.p))
	case TagString:
		f, err := strconv.ParseFloat(v.s, 32)
		if err != nil {
			return Float(0)
		}
		return Float(float32(f))
	default:
		return Float(0)
	}
}

// CastToPtr implements CSP: the total mapping to Ptr.
func CastToPtr(v Value) Value {
	switch v.Tag {
	case TagBool:
		if v.b {
			return Ptr(1)
		}
		return Ptr(0)
	case TagInt:
		return Ptr(uint32(v.i))
	case TagFloat:
		return Ptr(uint32(v.f))
	case TagPtr:
		return v
	case TagString:
		n, err := strconv.ParseUint(v.s, 10, 32)
		if err != nil {
			return Ptr(0)
		}
		return Ptr(uint32(n))
	default:
		return Ptr(0)
	}
}

// CastToString implements CSS: the total mapping to String.
func CastToString(v Value) Value {
	if v.Tag == TagString {
		return v
	}
	return String(v.plainText())
}

// plainText renders a value's text the way CSS wants it: no "f"/"p"
// suffix and no quoting, unlike String which renders the disassembly form.
func (v Value) plainText() string {
	switch v.Tag {
	case TagBool:
		if v.b {
			return "true"
		}
		return "false"
	case TagInt:
		return strconv.FormatInt(int64(v.i), 10)
	case TagFloat:
		return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
	case TagPtr:
		return strconv.FormatUint(uint64(v.p), 10)
	case TagString:
		return v.s
	default:
		return ""
	}
}

// IsBool implements ISB.
func IsBool(v Value) Value { return Bool(v.Tag == TagBool) }

// IsInt implements ISI.
func IsInt(v Value) Value { return Bool(v.Tag == TagInt) }

// IsFloat implements ISF.
func IsFloat(v Value) Value { return Bool(v.Tag == TagFloat) }

// IsPtr implements ISP.
func IsPtr(v Value) Value { return Bool(v.Tag == TagPtr) }

// IsString implements ISS.
func IsString(v Value) Value { return Bool(v.Tag == TagString) }
