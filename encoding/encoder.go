package encoding

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cockroachdb/errors"
	jsonenc "github.com/effective-security/finagent/encoding/json"
	textenc "github.com/effective-security/finagent/encoding/text"
	tomlenc "github.com/effective-security/finagent/encoding/toml"
	yamlenc "github.com/effective-security/finagent/encoding/yaml"
)

// Encoder converts values to and from a wire format.
type Encoder interface {
	Marshal(v any) ([]byte, error)
	Unmarshal([]byte, any) error
}

// Faker is implemented by request types that provide their own example
// instead of a randomly filled one.
type Faker interface {
	Fake() any
}

type Mode = string

const (
	ModeJSON      Mode = "json"
	ModeYAML      Mode = "yaml"
	ModeTOML      Mode = "toml"
	ModePlainText Mode = "text"
)

// Modes returns the supported modes
func Modes() []Mode {
	return []Mode{ModeJSON, ModeYAML, ModeTOML, ModePlainText}
}

// ModeDefault is the default mode for the encoder.
var ModeDefault = ModeJSON

var (
	_ Encoder = (*jsonenc.Encoder)(nil)
	_ Encoder = (*yamlenc.Encoder)(nil)
	_ Encoder = (*tomlenc.Encoder)(nil)
	_ Encoder = (*textenc.Encoder)(nil)
)

// NewEncoder returns the encoder for the mode, empty mode means ModeDefault
func NewEncoder(mode Mode) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		return NewEncoder(ModeDefault)
	case ModeJSON:
		return jsonenc.NewEncoder().WithIndent("  "), nil
	case ModeYAML:
		return yamlenc.NewEncoder(), nil
	case ModeTOML:
		return tomlenc.NewEncoder(), nil
	case ModePlainText:
		return textenc.NewEncoder(), nil
	default:
		return nil, errors.Errorf("unsupported format %q, choose from: %s", mode, strings.Join(Modes(), ", "))
	}
}

// Transcode decodes an object in one format and encodes it in another.
func Transcode(data []byte, from, to Encoder) ([]byte, error) {
	var obj map[string]any
	if err := from.Unmarshal(data, &obj); err != nil {
		return nil, errors.Wrap(err, "failed to decode")
	}
	if obj == nil {
		obj = map[string]any{}
	}
	bs, err := to.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode")
	}
	return bs, nil
}

// ToJSON converts an object in the mode to JSON.
func ToJSON(mode Mode, data []byte) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeJSON:
		return data, nil
	case ModeYAML:
		js, err := yamlenc.ToJSON(data)
		if err != nil {
			return nil, err
		}
		switch js = bytes.TrimSpace(js); {
		case string(js) == "null":
			return []byte("{}"), nil
		case !bytes.HasPrefix(js, []byte("{")):
			return nil, errors.New("arguments must be an object")
		}
		return js, nil
	default:
		from, err := NewEncoder(mode)
		if err != nil {
			return nil, err
		}
		return Transcode(data, from, jsonenc.NewEncoder())
	}
}

// Example returns an example instance of the request type in the mode.
// YAML examples carry the field descriptions as line comments.
func Example(mode Mode, req any) ([]byte, error) {
	instance, err := fake(req)
	if err != nil {
		return nil, err
	}

	var enc Encoder
	if strings.EqualFold(mode, ModeYAML) {
		enc = yamlenc.NewEncoder().WithCommentStyle(yamlenc.LineComment)
	} else {
		enc, err = NewEncoder(mode)
		if err != nil {
			return nil, err
		}
	}
	return enc.Marshal(instance)
}

func fake(req any) (any, error) {
	t := reflect.TypeOf(req)
	if t == nil {
		return nil, errors.New("request type is required")
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	tValue := reflect.New(t)
	if f, ok := tValue.Elem().Interface().(Faker); ok {
		return f.Fake(), nil
	}
	if f, ok := tValue.Interface().(Faker); ok {
		return f.Fake(), nil
	}

	instance := tValue.Interface()
	if err := gofakeit.Struct(instance); err != nil {
		return nil, errors.Wrap(err, "failed to create example")
	}
	return instance, nil
}
