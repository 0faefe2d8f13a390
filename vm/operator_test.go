package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinOperSameTagDispatch(t *testing.T) {
	assert.Equal(t, NewReturn(Int(7)), opAdd.apply(Int(3), Int(4)))
	assert.Equal(t, NewReturn(String("HelloWorld")), opAdd.apply(String("Hello"), String("World")))
	assert.Equal(t, NewReturn(Bool(true)), opAdd.apply(Bool(true), Bool(false)))
}

func TestBinOperMixedNumericPromotion(t *testing.T) {
	assert.Equal(t, NewReturn(Float(5)), opAdd.apply(Float(2), Int(3)))
	assert.Equal(t, NewReturn(Float(5)), opAdd.apply(Int(2), Float(3)))
	assert.Equal(t, NewReturn(Ptr(5)), opAdd.apply(Ptr(2), Int(3)))
	assert.Equal(t, NewReturn(Int(5)), opAdd.apply(Int(2), Ptr(3)))
}

func TestBinOperInvalidOperationMessages(t *testing.T) {
	assert.Equal(t, NewInvalidOperation("true - false"), opSub.apply(Bool(true), Bool(false)))
	assert.Equal(t, NewInvalidOperation(`"Hello" / "World"`), opDiv.apply(String("Hello"), String("World")))
	assert.Equal(t, NewInvalidOperation("3.3f & 2.2f"), opBand.apply(Float(3.3), Float(2.2)))
}

func TestFloatRemUsesTruncatedRemainder(t *testing.T) {
	res := opRem.apply(Float(5.5), Float(2.0))
	assert.Equal(t, Return, res.Kind)
	assert.InDelta(t, 1.5, float64(res.Value.AsFloat()), 1e-6)
}

func TestIntDivTruncatesTowardZero(t *testing.T) {
	assert.Equal(t, NewReturn(Int(-2)), opDiv.apply(Int(-7), Int(3)))
}

func TestShiftsAreIntOnly(t *testing.T) {
	assert.Equal(t, NewReturn(Int(8)), opShl.apply(Int(1), Int(3)))
	assert.Equal(t, NewReturn(Int(1)), opShr.apply(Int(8), Int(3)))
	assert.Equal(t, InvalidOperation, opShl.apply(Float(1), Float(3)).Kind)
}
