package vm

import "math"

// binOper is a typed binary operator: a name used in diagnostic messages
// plus one function pointer per concrete tag it supports. A nil per-tag
// function means the operator is undefined for that tag.
type binOper struct {
	name string

	boolFn   func(l, r bool) bool
	intFn    func(l, r int32) int32
	floatFn  func(l, r float32) float32
	ptrFn    func(l, r uint32) uint32
	stringFn func(l, r string) string
}

// apply dispatches left/right through the operator's dispatch table:
//  1. same concrete tag with a defined per-tag function,
//  2. mixed-numeric promotion (Float,Int)/(Int,Float) -> Float,
//     (Ptr,Int) -> Ptr, (Int,Ptr) -> Int,
//  3. otherwise InvalidOperation.
func (o *binOper) apply(left, right Value) Status {
	switch {
	case left.Tag == TagBool && right.Tag == TagBool:
		if o.boolFn != nil {
			return NewReturn(Bool(o.boolFn(left.b, right.b)))
		}
	case left.Tag == TagInt && right.Tag == TagInt:
		if o.intFn != nil {
			return NewReturn(Int(o.intFn(left.i, right.i)))
		}
	case left.Tag == TagFloat && right.Tag == TagInt:
		if o.floatFn != nil {
			return NewReturn(Float(o.floatFn(left.f, float32(right.i))))
		}
	case left.Tag == TagInt && right.Tag == TagFloat:
		if o.floatFn != nil {
			return NewReturn(Float(o.floatFn(float32(left.i), right.f)))
		}
	case left.Tag == TagFloat && right.Tag == TagFloat:
		if o.floatFn != nil {
			return NewReturn(Float(o.floatFn(left.f, right.f)))
		}
	case left.Tag == TagPtr && right.Tag == TagPtr:
		if o.ptrFn != nil {
			return NewReturn(Ptr(o.ptrFn(left.p, right.p)))
		}
	case left.Tag == TagPtr && right.Tag == TagInt:
		if o.ptrFn != nil {
			return NewReturn(Ptr(o.ptrFn(left.p, uint32(right.i))))
		}
	case left.Tag == TagInt && right.Tag == TagPtr:
		if o.intFn != nil {
			return NewReturn(Int(o.intFn(left.i, int32(right.p))))
		}
	case left.Tag == TagString && right.Tag == TagString:
		if o.stringFn != nil {
			return NewReturn(String(o.stringFn(left.s, right.s)))
		}
	}
	return NewInvalidOperation(left.String() + " " + o.name + " " + right.String())
}

var opAdd = &binOper{
	name:     "+",
	boolFn:   func(l, r bool) bool { return l || r },
	intFn:    func(l, r int32) int32 { return l + r },
	floatFn:  func(l, r float32) float32 { return l + r },
	ptrFn:    func(l, r uint32) uint32 { return l + r },
	stringFn: func(l, r string) string { return l + r },
}

var opSub = &binOper{
	name:    "-",
	intFn:   func(l, r int32) int32 { return l - r },
	floatFn: func(l, r float32) float32 { return l - r },
	ptrFn:   func(l, r uint32) uint32 { return l - r },
}

var opMul = &binOper{
	name:    "*",
	boolFn:  func(l, r bool) bool { return l && r },
	intFn:   func(l, r int32) int32 { return l * r },
	floatFn: func(l, r float32) float32 { return l * r },
	ptrFn:   func(l, r uint32) uint32 { return l * r },
}

// opDiv and opRem inherit Go's native int32/float32 division and remainder
// semantics: truncating toward zero for Int (panics on a zero divisor),
// IEEE-754 for Float (zero divisor yields Inf/NaN).
var opDiv = &binOper{
	name:    "/",
	intFn:   func(l, r int32) int32 { return l / r },
	floatFn: func(l, r float32) float32 { return l / r },
}

var opRem = &binOper{
	name:    "%",
	intFn:   func(l, r int32) int32 { return l % r },
	floatFn: func(l, r float32) float32 { return float32(math.Mod(float64(l), float64(r))) },
}

var opBand = &binOper{
	name:  "&",
	intFn: func(l, r int32) int32 { return l & r },
}

var opBor = &binOper{
	name:  "|",
	intFn: func(l, r int32) int32 { return l | r },
}

var opBxor = &binOper{
	name:  "^",
	intFn: func(l, r int32) int32 { return l ^ r },
}

var opShl = &binOper{
	name:  "<<",
	intFn: func(l, r int32) int32 { return l << uint32(r) },
}

var opShr = &binOper{
	name:  ">>",
	intFn: func(l, r int32) int32 { return l >> uint32(r) },
}
