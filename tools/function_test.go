package tools_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/llmutils"
	"github.com/effective-security/finagent/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateRequest struct {
	From string `json:"from" jsonschema:"title=From,description=Source currency" validate:"required"`
	To   string `json:"to" jsonschema:"title=To,description=Target currency" validate:"required"`
}

type rateResponse struct {
	Rate float64 `json:"rate"`
}

func getRate(_ context.Context, req *rateRequest) (*rateResponse, error) {
	from, err := finance.ParseCurrency(req.From)
	if err != nil {
		return nil, err
	}
	to, err := finance.ParseCurrency(req.To)
	if err != nil {
		return nil, err
	}
	r, err := finance.DefaultExchangeRateTable().Rate(from, to)
	if err != nil {
		return nil, err
	}
	return &rateResponse{Rate: r.Round(6).InexactFloat64()}, nil
}

func TestFunction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f, err := tools.NewFunction("get_rate", "Returns the exchange rate", getRate)
	require.NoError(t, err)
	assert.Equal(t, "get_rate", f.Name())
	assert.Equal(t, "Returns the exchange rate", f.Description())

	exp := `{
	"properties": {
		"from": {
			"type": "string",
			"title": "From",
			"description": "Source currency"
		},
		"to": {
			"type": "string",
			"title": "To",
			"description": "Target currency"
		}
	},
	"type": "object",
	"required": [
		"from",
		"to"
	]
}`
	assert.Equal(t, exp, llmutils.ToJSONIndent(f.Parameters()))

	t.Run("call", func(t *testing.T) {
		out, err := f.Call(ctx, `{"from":"USD","to":"JPY"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"rate":110}`, out)

		out, err = f.Call(ctx, "```json\n{\"from\":\"usd\",\"to\":\"eur\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, `{"rate":0.85}`, out)
	})

	t.Run("run", func(t *testing.T) {
		res, err := f.Run(ctx, &rateRequest{From: "EUR", To: "EUR"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.Rate)

		_, err = f.Run(ctx, nil)
		assert.True(t, errors.Is(err, tools.ErrBadArguments))
	})

	t.Run("bad json", func(t *testing.T) {
		_, err := f.Call(ctx, `{"from": 1}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tools.ErrFailedUnmarshalInput))
		assert.Equal(t, tools.KindBadArguments, tools.Classify(err))
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := f.Call(ctx, `{"from":"USD"}`)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tools.ErrBadArguments))
		assert.Contains(t, err.Error(), "Field validation for 'To' failed on the 'required' tag")
	})

	t.Run("domain error", func(t *testing.T) {
		_, err := f.Call(ctx, `{"from":"USD","to":"XYZ"}`)
		require.Error(t, err)
		assert.Equal(t, tools.KindUnsupportedCurrency, tools.Classify(err))
	})
}

func TestNewFunction_Errors(t *testing.T) {
	t.Parallel()

	_, err := tools.NewFunction("", "no name", getRate)
	assert.EqualError(t, err, "tool name is required")

	_, err = tools.NewFunction[rateRequest, rateResponse]("nil_func", "", nil)
	assert.EqualError(t, err, "tool nil_func: function is required")

	_, err = tools.NewFunction("bad_input", "", func(context.Context, *string) (*string, error) { return nil, nil })
	assert.EqualError(t, err, "tool bad_input: failed to create schema: schema: string is not a struct")

	assert.Panics(t, func() {
		tools.MustFunction("", "", getRate)
	})
}
