// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/prompt"
)

// Runner is the type-erased view of an Operation used by the command tree.
type Runner interface {
	Describe() Spec
	Flags() []cli.Flag
	ResponseType() reflect.Type
	Invoke(ctx context.Context, cmd *cli.Command, env *Env) (*Invocation, error)
}

// Invocation is what a completed command hands to the output pipeline.
type Invocation struct {
	Records []json.RawMessage
	// DefaultSelect is set when the operation's own Select was used, in which
	// case its Attrs describe the records.
	DefaultSelect bool
	// Declined is set when the user refused the confirmation prompt.
	Declined bool
	NextToken *string
}

// Result holds everything about one call (or one auto-iterated series of
// calls). Every SDK error ends up in ErrorResponse.
type Result[I, O any] struct {
	Request        *I
	Response       *O
	PipelineOutput []json.RawMessage
	NextToken      *string
	ErrorResponse  error
}

// Operation binds a Spec to the SDK calls that implement it. C is the client
// interface, I and O the SDK input and output types.
type Operation[C, I, O any] struct {
	Spec

	// Client returns the service client for the invocation.
	Client func(context.Context, *Env) (C, error)
	// Build creates the request from the bound params.
	Build func(*Bag) (*I, error)
	// Call makes the SDK call.
	Call func(context.Context, C, *I) (*O, error)

	// NextToken and SetToken are set for paginated operations.
	NextToken func(*O) *string
	SetToken  func(*I, *string)
}

func (op *Operation[C, I, O]) Describe() Spec {
	s := op.Spec
	s.Paginated = op.paginated()
	return s
}

func (op *Operation[C, I, O]) paginated() bool {
	return op.NextToken != nil && op.SetToken != nil
}

// ResponseType is the SDK output type, used by --schema.
func (op *Operation[C, I, O]) ResponseType() reflect.Type {
	return reflect.TypeOf((*O)(nil)).Elem()
}

// Flags returns the param flags plus the operation's runtime flags.
func (op *Operation[C, I, O]) Flags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(op.Params)+4)
	for _, p := range op.Params {
		flags = append(flags, p.CLIFlag())
	}

	flags = append(flags, &cli.StringFlag{
		Name:  "select",
		Usage: "projection: * for the whole response, ^Param to echo a parameter, or a response path",
		Value: op.Select,
	})

	if op.Confirm {
		flags = append(flags, &cli.BoolFlag{
			Name:        "force",
			Usage:       "skip the confirmation prompt",
			HideDefault: true,
		})
	}

	if op.paginated() {
		flags = append(flags,
			&cli.BoolFlag{
				Name:        "no-auto-iteration",
				Usage:       "make a single call and report the next token",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "next-token",
				Usage: "continuation token from a previous call",
			},
		)
	}

	return flags
}

// Invoke runs the operation for the bound flags on cmd.
func (op *Operation[C, I, O]) Invoke(ctx context.Context, cmd *cli.Command, env *Env) (*Invocation, error) {
	bag := NewBag(cmd, op.Params)
	bag.WarnMissing(env.stderr(), op.Params)

	selectSpec := op.Select
	if cmd.IsSet("select") {
		selectSpec = cmd.String("select")
	}
	sel, err := ParseSelector(selectSpec, op.Spec)
	if err != nil {
		return nil, err
	}

	if key, ok := bag.serverFilterKey(); ok && !op.ServerFilters {
		return nil, fmt.Errorf("%s does not take server-side filters, drop the leading '_' from _%s to filter the results locally", op.Name, key)
	}

	if op.Confirm && !cmd.Bool("force") {
		target := bag.Display(op.Target)
		ok, err := env.confirm(ctx, prompt.Message(op.Name, op.API, target))
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Infof("%s declined", op.Name)
			return &Invocation{Declined: true}, nil
		}
	}

	client, err := op.Client(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", op.Service, err)
	}

	req, err := op.Build(bag)
	if err != nil {
		return nil, err
	}

	userPaging := op.paginated() && (cmd.Bool("no-auto-iteration") || cmd.IsSet("next-token"))
	var token *string
	if userPaging && cmd.IsSet("next-token") {
		t := cmd.String("next-token")
		token = &t
	}

	result := op.execute(ctx, client, req, bag, sel, userPaging, token)

	if result.ErrorResponse != nil {
		result.ErrorResponse = aws.Friendly(result.ErrorResponse, aws.ErrorContext{
			Service:   op.Service,
			Operation: op.API,
			Region:    env.Region(ctx),
		})
	}

	op.record(ctx, env, result)

	if result.ErrorResponse != nil {
		return nil, result.ErrorResponse
	}

	if userPaging && result.NextToken != nil && *result.NextToken != "" {
		fmt.Fprintf(env.stderr(), "NextToken: %s\n", *result.NextToken)
	}

	return &Invocation{
		Records:       result.PipelineOutput,
		DefaultSelect: sel.String() == op.Select,
		NextToken:     result.NextToken,
	}, nil
}

// execute makes the call. With userPaging a single call is made with the
// given token. Otherwise pages are followed until the token runs out or
// repeats.
func (op *Operation[C, I, O]) execute(
	ctx context.Context,
	client C,
	req *I,
	bag *Bag,
	sel Selector,
	userPaging bool,
	token *string,
) *Result[I, O] {
	result := &Result[I, O]{Request: req}

	if !op.paginated() || userPaging {
		if op.paginated() {
			op.SetToken(req, token)
		}
		out, err := op.Call(ctx, client, req)
		if err != nil {
			result.ErrorResponse = err
			return result
		}
		result.Response = out
		if op.paginated() {
			result.NextToken = op.NextToken(out)
		}
		result.PipelineOutput, result.ErrorResponse = sel.Apply(out, bag)
		return result
	}

	seen := make(map[string]bool)
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			result.ErrorResponse = err
			return result
		}
		op.SetToken(req, token)
		out, err := op.Call(ctx, client, req)
		if err != nil {
			result.ErrorResponse = err
			return result
		}
		result.Response = out

		records, err := sel.Apply(out, bag)
		if err != nil {
			result.ErrorResponse = err
			return result
		}
		result.PipelineOutput = append(result.PipelineOutput, records...)
		log.Debugf("%s page %d: %d records", op.API, page, len(records))

		next := op.NextToken(out)
		if next == nil || *next == "" {
			break
		}
		if seen[*next] {
			log.Warnf("%s returned a token it already issued, stopping", op.API)
			break
		}
		seen[*next] = true
		token = next
	}

	// The request goes back to the caller the way they built it.
	op.SetToken(req, nil)
	return result
}

func (op *Operation[C, I, O]) record(ctx context.Context, env *Env, result *Result[I, O]) {
	if env.Record == nil {
		return
	}

	entry := history.NewEntry(op.Service, op.Name, op.API)
	entry.Region = env.Region(ctx)

	if raw, err := json.Marshal(result.Request); err == nil {
		entry.Request = raw
	}
	if result.Response != nil {
		if raw, err := ResponseJSON(result.Response); err == nil {
			entry.Response = raw
		}
	}
	if result.NextToken != nil {
		entry.NextToken = *result.NextToken
	}
	if result.ErrorResponse != nil {
		entry.Error = result.ErrorResponse.Error()
	}

	if err := env.Record(entry); err != nil {
		log.WithError(err).Warnf("failed to record %s in history", op.Name)
	}
}
