package json

import (
	"encoding/json"

	"github.com/effective-security/finagent/pkg/llmutils"
)

type Encoder struct {
	indent string
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// WithIndent makes Marshal produce indented JSON
func (e *Encoder) WithIndent(indent string) *Encoder {
	e.indent = indent
	return e
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	if e.indent != "" {
		return json.MarshalIndent(v, "", e.indent)
	}
	return json.Marshal(v)
}

// Unmarshal accepts JSON wrapped in markdown code fences. Blank input is an empty object.
func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	return json.Unmarshal(llmutils.CleanArguments(string(bs)), ret)
}
