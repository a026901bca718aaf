// Package llmutils provides helpers for tool arguments produced by language models
// and for text sent back to them.
package llmutils

import (
	"bytes"
	"encoding/json"
	"strings"
)

var (
	emptyObject = []byte("{}")
	fence       = []byte("```")
)

// CleanArguments returns the JSON object of tool call arguments,
// with markdown fences and chatter around the JSON removed.
// Blank arguments are returned as an empty object.
func CleanArguments(args string) []byte {
	bs := bytes.TrimSpace([]byte(args))
	switch {
	case len(bs) == 0:
		return emptyObject
	case bs[0] != '{' && bs[0] != '[':
		bs = BytesTrimBackticks(bs)
	}
	return CleanJSON(bs)
}

// CleanJSON returns the outermost JSON object or array of bs,
// so `Here you go: {...} Anything else?` yields the object.
// Input without braces or brackets is returned unchanged.
func CleanJSON(bs []byte) []byte {
	start := bytes.IndexAny(bs, "{[")
	if start == -1 {
		return bs
	}
	end := max(bytes.LastIndexByte(bs, '}'), bytes.LastIndexByte(bs, ']'))
	if end < start {
		return bs[start:]
	}
	return bs[start : end+1]
}

// BytesTrimBackticks returns the content of a fenced code block
// without its info string, such as ```json or ```yaml.
// Input without a fence is returned unchanged.
func BytesTrimBackticks(bs []byte) []byte {
	_, body, ok := bytes.Cut(bs, fence)
	if !ok {
		return bs
	}
	// the info string ends at the first newline, unless the JSON starts on the fence line
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 && bytes.IndexAny(body[:nl], "{[") == -1 {
		body = body[nl+1:]
	}
	if end := bytes.LastIndex(body, fence); end >= 0 {
		body = body[:end]
	}
	return bytes.TrimSpace(body)
}

// ToJSONIndent returns tab indented JSON of the value,
// or an empty string if it can not be encoded.
func ToJSONIndent(val any) string {
	js, _ := json.MarshalIndent(val, "", "\t")
	return string(js)
}

// BackticksJSON wraps JSON in a markdown code fence
func BackticksJSON(js string) string {
	return "\n```json\n" + strings.TrimSpace(js) + "\n```\n"
}

// EnsureEndsWithNewline trims the spaces around s and terminates it with a single newline.
// Blank input stays empty.
func EnsureEndsWithNewline(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return s + "\n"
}
