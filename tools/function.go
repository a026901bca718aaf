package tools

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/llmutils"
	"github.com/effective-security/finagent/pkg/schema"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` struct tags of the request.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return errors.WithMessage(ErrBadArguments, verrs.Error())
		}
		return errors.WithMessage(ErrBadArguments, err.Error())
	}
	return nil
}

// CallJSON decodes the JSON arguments into I, validates it,
// runs the function and returns the JSON encoded output.
func CallJSON[I any, O any](ctx context.Context, input string, run func(context.Context, *I) (*O, error)) (string, error) {
	var req I
	if err := json.Unmarshal(llmutils.CleanArguments(input), &req); err != nil {
		return "", errors.WithMessage(ErrFailedUnmarshalInput, err.Error())
	}
	if err := Validate(&req); err != nil {
		return "", err
	}

	out, err := run(ctx, &req)
	if err != nil {
		return "", err
	}
	bs, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(bs), nil
}

// Function is a Tool backed by a typed function.
type Function[I any, O any] struct {
	name        string
	description string
	funcParams  any
	fn          func(context.Context, *I) (*O, error)
}

var _ Tool[struct{}, struct{}] = (*Function[struct{}, struct{}])(nil)

// NewFunction returns a Tool with parameters reflected from I.
func NewFunction[I any, O any](name, description string, fn func(context.Context, *I) (*O, error)) (*Function[I, O], error) {
	if name == "" {
		return nil, errors.New("tool name is required")
	}
	if fn == nil {
		return nil, errors.Errorf("tool %s: function is required", name)
	}
	sc, err := schema.For[I]()
	if err != nil {
		return nil, errors.WithMessagef(err, "tool %s: failed to create schema", name)
	}
	return &Function[I, O]{
		name:        name,
		description: description,
		funcParams:  sc.Parameters,
		fn:          fn,
	}, nil
}

// MustFunction is like NewFunction but panics on error.
func MustFunction[I any, O any](name, description string, fn func(context.Context, *I) (*O, error)) *Function[I, O] {
	f, err := NewFunction(name, description, fn)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Function[I, O]) Name() string {
	return f.name
}

func (f *Function[I, O]) Description() string {
	return f.description
}

func (f *Function[I, O]) Parameters() any {
	return f.funcParams
}

// Run validates the request and calls the function.
func (f *Function[I, O]) Run(ctx context.Context, req *I) (*O, error) {
	if req == nil {
		return nil, errors.WithMessage(ErrBadArguments, "request is required")
	}
	if err := Validate(req); err != nil {
		return nil, err
	}
	return f.fn(ctx, req)
}

func (f *Function[I, O]) Call(ctx context.Context, input string) (string, error) {
	return CallJSON(ctx, input, f.fn)
}
