package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Leg struct {
	Currency string  `yaml:"currency" jsonschema:"description=Currency code"`
	Rate     float64 `yaml:"rate" jsonschema:"description=Rate to base"`
}

type Quote struct {
	Name   string  `yaml:"name" comment:"Quote name" jsonschema:"description=quote name"`
	Amount *int    `yaml:"amount" jsonschema:"description=Amount in cents"`
	Base   *Leg    `yaml:"base" jsonschema:"description=Base leg"`
	Legs   []Leg   `yaml:"legs" jsonschema:"description=Other legs"`
	Skip   string  `yaml:"-"`
	Note   string  `yaml:"note,omitempty"`
	hidden string
	Ratio  float64 `yaml:"ratio"`
}

func TestYaml(t *testing.T) {
	t.Parallel()

	amount := 1500
	q := Quote{
		Name:   "weekly",
		Amount: &amount,
		Base:   &Leg{Currency: "USD", Rate: 1},
		Legs:   []Leg{{Currency: "EUR", Rate: 0.85}},
		Skip:   "skipped",
		Ratio:  0.5,
	}

	enc := NewEncoder().WithCommentStyle(LineComment)
	out, err := enc.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, `name: weekly # Quote name
amount: 1500 # Amount in cents
base: # Base leg
    currency: USD # Currency code
    rate: 1 # Rate to base
legs: # Other legs
    - currency: EUR # Currency code
      rate: 0.85 # Rate to base
ratio: 0.5
`, string(out))

	out, err = enc.Marshal((*Quote)(nil))
	require.NoError(t, err)
	assert.Equal(t, "null\n", string(out))

	_, err = enc.Marshal("string")
	assert.EqualError(t, err, "expected struct, got string")

	var back Quote
	require.NoError(t, NewEncoder().Unmarshal([]byte("```yaml\nname: weekly\nratio: 0.5\n```"), &back))
	assert.Equal(t, "weekly", back.Name)
	assert.Equal(t, 0.5, back.Ratio)
}

func TestExtractDescription(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a, b", extractDescription(`title=X,description=a\, b,example=1`))
	assert.Empty(t, extractDescription(`title=X`))
}
