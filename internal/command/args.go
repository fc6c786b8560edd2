// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/apex/log"

	"github.com/staranto/excomp/internal/config"
	"github.com/staranto/excomp/internal/params"
)

// MangleArguments rewrites os.Args before they reach urfave/cli. It expands
// an @set (or the "defaults" set) from config key <cmd>.sets.<name>, and for
// check moves every numeric param behind "--" so negative numbers are not
// parsed as flags. Relative order of params is preserved.
func MangleArguments(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2, len(args)+4)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args[2:] {
		if a == "--" {
			break
		}
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	var before, after []string
	rest := args[2:]
	for i, a := range rest {
		if a == "--" {
			after = rest[i+1:]
			break
		}
		before = append(before, a)
	}

	// Pull out an @set. If there is more than one, the first wins.
	set := "defaults"
	explicit := false
	var flagArgs, numeric []string
	for _, a := range before {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			if !explicit {
				set = a[1:]
				explicit = true
			}
			continue
		}
		if args[1] == "check" && !strings.HasPrefix(a, "--") {
			if _, err := params.Parse(a); err == nil {
				numeric = append(numeric, a)
				continue
			}
		}
		flagArgs = append(flagArgs, a)
	}

	var setArgs []string
	entries, err := config.GetStringSlice(args[1] + ".sets." + set)
	if err != nil && explicit {
		log.Warnf("argument set @%s not found: %v", set, err)
	}
	for _, e := range entries {
		setArgs = append(setArgs, strings.Fields(e)...)
	}

	result := append(preamble, setArgs...)
	result = append(result, flagArgs...)
	if len(numeric) > 0 || len(after) > 0 {
		result = append(result, "--")
		result = append(result, numeric...)
		result = append(result, after...)
	}

	log.Debugf("set=%s, args=%v", set, result)
	return result
}
