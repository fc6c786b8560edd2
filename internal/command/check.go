// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/excomp/internal/component"
	"github.com/staranto/excomp/internal/config"
	"github.com/staranto/excomp/internal/meta"
	"github.com/staranto/excomp/internal/output"
	"github.com/staranto/excomp/internal/params"
)

// ErrNoParams is returned when check has nothing to evaluate.
var ErrNoParams = errors.New("no params given")

var checkDefaultAttrs = []string{"!index", "param", "!value", "result", "decided_by"}

// CheckCommandAction is the action handler for the "check" subcommand. It
// evaluates ExampleComponent.SomeMethod for every param and emits the results
// per common flags.
func CheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "check") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(component.Evaluation{})) {
		return nil
	}

	config.Config.Namespace = "check"

	raw := cmd.Args().Slice()
	if cmd.Bool("stdin") {
		in := reader(cmd)
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(os.Stderr, "reading params from stdin, end with Ctrl-D")
		}
		tokens, err := params.Read(in)
		if err != nil {
			return err
		}
		raw = append(raw, tokens...)
	}
	if len(raw) == 0 {
		return ErrNoParams
	}

	values, err := params.ParseAll(raw)
	if err != nil {
		return err
	}

	c := component.New()
	evaluations := make([]component.Evaluation, 0, len(values))
	for i, v := range values {
		evaluations = append(evaluations, c.Evaluate(i+1, raw[i], v))
	}
	log.Debugf("evaluated %d params", len(evaluations))

	al, err := BuildAttrs(cmd, checkDefaultAttrs...)
	if err != nil {
		return fmt.Errorf("invalid --attrs: %w", err)
	}
	log.Debugf("attrs: %v", al.String())

	doc, err := json.Marshal(evaluations)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluations: %w", err)
	}

	return output.SliceDiceSpit(doc, al, OutputOptions(cmd), writer(cmd))
}

// CheckCommandBuilder constructs the cli.Command for "check", wiring
// metadata, flags, and action/validator handlers.
func CheckCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:  "check",
		Usage: "evaluate params against the example component",
		UsageText: `excomp check [options] PARAM...
excomp check --stdin [options] < params.txt`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdin",
				Usage: "also read whitespace-separated params from stdin",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("check.stdin", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
		},
		Action: CheckCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}
