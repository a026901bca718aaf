package toml

import (
	"github.com/BurntSushi/toml"
	"github.com/effective-security/finagent/pkg/llmutils"
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	data := llmutils.BytesTrimBackticks(bs)
	_, err := toml.Decode(string(data), ret)
	return err
}
