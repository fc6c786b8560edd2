// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package component

import "math"

// ExampleComponent answers SomeMethod for a numeric parameter, falling back to
// its internal flag when the parameter is falsy. The zero value is ready to
// use.
type ExampleComponent struct {
	// something is never changed after construction.
	something bool
}

// New returns an ExampleComponent with the flag cleared.
func New() *ExampleComponent {
	return &ExampleComponent{}
}

// SomeMethod returns true when param is truthy, otherwise the internal flag.
func (c *ExampleComponent) SomeMethod(param float64) bool {
	if Truthy(param) {
		return true
	}

	return c.something
}

// Truthy reports whether v coerces to true. Zero (either sign) and NaN are
// falsy, every other value including the infinities is truthy.
func Truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}
