// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package params turns command line and stdin text into the numeric inputs
// handed to the component.
package params

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// ErrNotNumeric is wrapped by every parse failure.
var ErrNotNumeric = errors.New("not a number")

// integerBases maps the unsigned integer literal prefixes to their base.
var integerBases = map[string]int{
	"0x": 16, "0X": 16,
	"0o": 8, "0O": 8,
	"0b": 2, "0B": 2,
}

// Parse converts a single input to a float64. Magnitudes outside the float64
// range saturate to ±Inf or zero instead of failing. Unsigned hex, octal and
// binary integer literals (0x10, 0o17, 0b101) are accepted as well.
func Parse(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotNumeric)
	}

	if v, ok := parseInteger(s); ok {
		return v, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			log.Debugf("param %q out of range, using %v", raw, v)
			return v, nil
		}
		return 0, fmt.Errorf("%q: %w", raw, ErrNotNumeric)
	}

	return v, nil
}

// parseInteger handles the prefixed integer literals ParseFloat rejects. A
// sign or digit separators make the literal invalid.
func parseInteger(s string) (float64, bool) {
	if len(s) < 3 {
		return 0, false
	}
	base, ok := integerBases[s[:2]]
	if !ok || s[2] == '+' || s[2] == '-' {
		return 0, false
	}

	n, ok := new(big.Int).SetString(s[2:], base)
	if !ok {
		return 0, false
	}
	v, _ := new(big.Float).SetInt(n).Float64()
	return v, true
}

// ParseAll parses each input in order and stops at the first failure.
func ParseAll(raw []string) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for i, r := range raw {
		v, err := Parse(r)
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// Read collects whitespace separated tokens from r. Lines whose first
// non-blank character is # are skipped.
func Read(r io.Reader) ([]string, error) {
	var tokens []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read params: %w", err)
	}

	return tokens, nil
}
