package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullBackendAlwaysUnknown(t *testing.T) {
	b := NewNullBackend()
	b.AddAssertion(BoolConst(false))
	result, model, err := b.Check(nil)
	assert.Equal(t, Unknown, result)
	assert.Nil(t, model)
	assert.NoError(t, err)
}

func TestNullBackendPopWithoutPushPanics(t *testing.T) {
	b := NewNullBackend()
	assert.Panics(t, func() { b.Pop() })
}

func TestNullBackendPushPopBalanced(t *testing.T) {
	b := NewNullBackend()
	b.Push()
	b.Push()
	b.Pop()
	b.Pop()
	assert.Panics(t, func() { b.Pop() })
}

func TestCannedBackendMatchesRecordedFingerprint(t *testing.T) {
	x := Var("x", SortInt)
	assertion := Gt(x, IntConstInt64(0))

	fp := Fingerprint([]*Term{assertion}, []*Term{x})

	b := NewCannedBackend(map[string]CannedResponse{
		fp: {Result: Satisfiable, Model: []string{"1"}},
	})
	b.AddAssertion(assertion)

	result, model, err := b.Check([]*Term{x})
	assert.NoError(t, err)
	assert.Equal(t, Satisfiable, result)
	assert.Equal(t, []string{"1"}, model)
}

func TestCannedBackendUnrecordedQueryIsUnknown(t *testing.T) {
	b := NewCannedBackend(nil)
	b.AddAssertion(BoolConst(true))
	result, model, err := b.Check(nil)
	assert.NoError(t, err)
	assert.Equal(t, Unknown, result)
	assert.Nil(t, model)
}

func TestCannedBackendScopedAssertionsAffectFingerprint(t *testing.T) {
	x := Var("x", SortInt)
	inner := Gt(x, IntConstInt64(0))

	b := NewCannedBackend(nil)
	fpWithoutInner := Fingerprint(nil, []*Term{x})
	b.Push()
	b.AddAssertion(inner)
	fpWithInner := Fingerprint([]*Term{inner}, []*Term{x})
	assert.NotEqual(t, fpWithoutInner, fpWithInner)

	b.Pop()
	result, _, _ := b.Check([]*Term{x})
	assert.Equal(t, Unknown, result)
}

func TestFingerprintIsDeterministic(t *testing.T) {
	x := Var("x", SortInt)
	a := Gt(x, IntConstInt64(0))
	fp1 := Fingerprint([]*Term{a}, []*Term{x})
	fp2 := Fingerprint([]*Term{a}, []*Term{x})
	assert.Equal(t, fp1, fp2)
}
