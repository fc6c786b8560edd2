// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package component

import "strconv"

// Who decided an Evaluation's result.
const (
	DecidedByParam = "param"
	DecidedByFlag  = "flag"
)

// Evaluation is one SomeMethod call as reported by the check command. Value
// is kept as text because NaN and the infinities have no JSON encoding.
type Evaluation struct {
	Index     int    `json:"index" attr:"index"`
	Param     string `json:"param" attr:"param"`
	Value     string `json:"value" attr:"value"`
	Result    bool   `json:"result" attr:"result"`
	DecidedBy string `json:"decided_by" attr:"decided_by"`
}

// Evaluate runs SomeMethod on v and records the outcome. index is the 1-based
// position of the input and param its original text.
func (c *ExampleComponent) Evaluate(index int, param string, v float64) Evaluation {
	e := Evaluation{
		Index:     index,
		Param:     param,
		Value:     strconv.FormatFloat(v, 'g', -1, 64),
		Result:    c.SomeMethod(v),
		DecidedBy: DecidedByFlag,
	}
	if Truthy(v) {
		e.DecidedBy = DecidedByParam
	}
	return e
}
