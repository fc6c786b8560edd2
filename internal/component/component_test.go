// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package component

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSomeMethod(t *testing.T) {
	tests := []struct {
		name  string
		param float64
		want  bool
	}{
		{name: "positive integer", param: 5, want: true},
		{name: "zero", param: 0, want: false},
		{name: "negative", param: -1, want: true},
		{name: "small fraction", param: 0.0001, want: true},
		{name: "negative zero", param: math.Copysign(0, -1), want: false},
		{name: "NaN", param: math.NaN(), want: false},
		{name: "positive infinity", param: math.Inf(1), want: true},
		{name: "negative infinity", param: math.Inf(-1), want: true},
		{name: "smallest denormal", param: math.SmallestNonzeroFloat64, want: true},
		{name: "max float", param: math.MaxFloat64, want: true},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.SomeMethod(tt.param))
		})
	}
}

func TestSomeMethod_ZeroValue(t *testing.T) {
	var c ExampleComponent
	assert.False(t, c.something)
	assert.False(t, c.SomeMethod(0))
	assert.True(t, c.SomeMethod(5))
}

func TestSomeMethod_FallsBackToFlag(t *testing.T) {
	c := &ExampleComponent{something: true}

	assert.True(t, c.SomeMethod(0))
	assert.True(t, c.SomeMethod(math.NaN()))
	assert.True(t, c.SomeMethod(-3))
}

func TestSomeMethod_Idempotent(t *testing.T) {
	c := New()
	for _, p := range []float64{0, 5, -1, math.NaN()} {
		first := c.SomeMethod(p)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, c.SomeMethod(p), "param %v call %d", p, i)
		}
	}
	assert.False(t, c.something, "flag must not change")
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(1))
	assert.True(t, Truthy(-0.5))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(math.NaN()))
}

func TestEvaluate(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		index int
		param string
		value float64
		want  Evaluation
	}{
		{
			name: "truthy", index: 1, param: "5", value: 5,
			want: Evaluation{Index: 1, Param: "5", Value: "5", Result: true, DecidedBy: DecidedByParam},
		},
		{
			name: "zero", index: 2, param: "0.0", value: 0,
			want: Evaluation{Index: 2, Param: "0.0", Value: "0", Result: false, DecidedBy: DecidedByFlag},
		},
		{
			name: "NaN", index: 3, param: "nan", value: math.NaN(),
			want: Evaluation{Index: 3, Param: "nan", Value: "NaN", Result: false, DecidedBy: DecidedByFlag},
		},
		{
			name: "infinity", index: 4, param: "-Inf", value: math.Inf(-1),
			want: Evaluation{Index: 4, Param: "-Inf", Value: "-Inf", Result: true, DecidedBy: DecidedByParam},
		},
		{
			name: "hex", index: 5, param: "0x1p-2", value: 0.25,
			want: Evaluation{Index: 5, Param: "0x1p-2", Value: "0.25", Result: true, DecidedBy: DecidedByParam},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Evaluate(tt.index, tt.param, tt.value))
		})
	}
}

func TestEvaluate_FlagSet(t *testing.T) {
	c := &ExampleComponent{something: true}
	e := c.Evaluate(1, "0", 0)
	assert.True(t, e.Result)
	assert.Equal(t, DecidedByFlag, e.DecidedBy)
}
