package tools

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/finance"
	"github.com/effective-security/finagent/pkg/fitness"
)

// Status of a tool call
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorKind classifies a failed tool call.
type ErrorKind string

// Error kinds
const (
	KindInvalidInput        ErrorKind = "InvalidInput"
	KindUnsupportedCurrency ErrorKind = "UnsupportedCurrency"
	KindNotFound            ErrorKind = "NotFound"
	KindBadArguments        ErrorKind = "BadArguments"
	KindToolNotFound        ErrorKind = "ToolNotFound"
	KindInternal            ErrorKind = "Internal"
)

// Classify returns the kind of the error.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, finance.ErrUnsupportedCurrency):
		return KindUnsupportedCurrency
	case errors.Is(err, finance.ErrInvalidInput),
		errors.Is(err, fitness.ErrInvalidInput),
		errors.Is(err, fitness.ErrUnsupportedActivity):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrFailedUnmarshalInput), errors.Is(err, ErrBadArguments):
		return KindBadArguments
	default:
		return KindInternal
	}
}

// Result is the outcome of a tool call as reported to the agent.
//
// A success is encoded as the tool output object with a "status" field added,
// a failure as {"status":"error","error_kind":...,"error_message":...}.
type Result struct {
	// ID is the tool call ID, if provided by the caller
	ID string
	// Tool is the requested tool name
	Tool string
	// Output is the JSON output of the tool on success
	Output json.RawMessage
	// Kind is set on failure
	Kind ErrorKind
	// Message is set on failure
	Message string
}

// NewSuccess returns a successful result with the JSON output of the tool.
func NewSuccess(tool, output string) *Result {
	return &Result{
		Tool:   tool,
		Output: json.RawMessage(output),
	}
}

// NewFailure returns a failed result.
func NewFailure(tool string, kind ErrorKind, message string) *Result {
	return &Result{
		Tool:    tool,
		Kind:    kind,
		Message: message,
	}
}

// NewError returns a failed result classified from the error.
func NewError(tool string, err error) *Result {
	return NewFailure(tool, Classify(err), err.Error())
}

// IsError returns true if the tool call failed.
func (r *Result) IsError() bool {
	return r.Kind != ""
}

// Status returns StatusSuccess or StatusError.
func (r *Result) Status() string {
	if r.IsError() {
		return StatusError
	}
	return StatusSuccess
}

type failure struct {
	Status       string    `json:"status"`
	ErrorKind    ErrorKind `json:"error_kind"`
	ErrorMessage string    `json:"error_message"`
}

var successPrefix = []byte(`{"status":"success"`)

// MarshalJSON implements json.Marshaler
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(failure{
			Status:       StatusError,
			ErrorKind:    r.Kind,
			ErrorMessage: r.Message,
		})
	}

	out := bytes.TrimSpace(r.Output)
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return append(bytes.Clone(successPrefix), '}'), nil
	}
	if out[0] != '{' {
		if !json.Valid(out) {
			return nil, errors.Errorf("tool %s returned invalid JSON", r.Tool)
		}
		var buf bytes.Buffer
		buf.Write(successPrefix)
		buf.WriteString(`,"result":`)
		buf.Write(out)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(out, &fields); err != nil {
		return nil, errors.Wrapf(err, "tool %s returned invalid JSON", r.Tool)
	}
	var buf bytes.Buffer
	buf.Write(successPrefix)
	inner := bytes.TrimSpace(out[1:])
	if len(inner) > 0 && inner[0] != '}' {
		buf.WriteByte(',')
	}
	buf.Write(inner)
	return buf.Bytes(), nil
}

// String returns the JSON encoded result.
func (r *Result) String() string {
	bs, err := json.Marshal(r)
	if err != nil {
		return `{"status":"error","error_kind":"Internal","error_message":` + quote(err.Error()) + `}`
	}
	return string(bs)
}

// Map returns the result as a generic JSON object.
func (r *Result) Map() (map[string]any, error) {
	bs, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err = json.Unmarshal(bs, &m); err != nil {
		return nil, errors.WithStack(err)
	}
	return m, nil
}

func quote(s string) string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
