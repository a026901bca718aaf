package yaml

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finagent/pkg/llmutils"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

type CommentStyle int

const (
	NoComment CommentStyle = iota
	HeadComment
	LineComment
	FootComment
)

type Encoder struct {
	commentStyle CommentStyle
}

func NewEncoder() *Encoder {
	return &Encoder{
		commentStyle: NoComment,
	}
}

// WithCommentStyle annotates struct fields with the `comment` tag,
// or the jsonschema description when the tag is missing.
func (e *Encoder) WithCommentStyle(style CommentStyle) *Encoder {
	e.commentStyle = style
	return e
}

func (e *Encoder) Marshal(v any) ([]byte, error) {
	if e.commentStyle == NoComment {
		return yaml.Marshal(v)
	}
	node, err := e.structToYAMLWithComments(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func (e *Encoder) Unmarshal(bs []byte, ret any) error {
	data := llmutils.BytesTrimBackticks(bs)
	return yaml.Unmarshal(data, ret)
}

// ToJSON converts a YAML document to JSON
func ToJSON(bs []byte) ([]byte, error) {
	js, err := sigsyaml.YAMLToJSON(llmutils.BytesTrimBackticks(bs))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return js, nil
}

var nullNode = yaml.Node{Kind: yaml.ScalarNode, Value: "null", Tag: "!!null"}

// Parse struct and convert it to a YAML Node with comments
func (e *Encoder) structToYAMLWithComments(v any) (*yaml.Node, error) {
	val := dereference(reflect.ValueOf(v))
	if !val.IsValid() {
		n := nullNode
		return &n, nil
	}

	if val.Kind() != reflect.Struct {
		return nil, errors.Errorf("expected struct, got %s", val.Kind())
	}

	typ := val.Type()
	root := &yaml.Node{Kind: yaml.MappingNode}

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		yamlKey, opts, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if yamlKey == "-" {
			continue
		}
		if yamlKey == "" {
			yamlKey = strings.ToLower(field.Name)
		}
		if strings.Contains(opts, "omitempty") && val.Field(i).IsZero() {
			continue
		}

		comment := field.Tag.Get("comment")
		if comment == "" {
			comment = extractDescription(field.Tag.Get("jsonschema"))
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: yamlKey}
		if comment != "" {
			switch e.commentStyle {
			case HeadComment:
				keyNode.HeadComment = comment
			case LineComment:
				keyNode.LineComment = comment
			case FootComment:
				keyNode.FootComment = comment
			}
		}

		root.Content = append(root.Content, keyNode, e.getValueNode(val.Field(i)))
	}

	return root, nil
}

// Recursively parse values, supporting pointers and interfaces
func (e *Encoder) getValueNode(v reflect.Value) *yaml.Node {
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			n := nullNode
			return &n
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.String(), Tag: "!!str"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(v.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatUint(v.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v.Float(), 'f', -1, 64)}
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(v.Bool())}
	case reflect.Map:
		return e.mapToYAMLNode(v)
	case reflect.Struct:
		node, _ := e.structToYAMLWithComments(v.Interface())
		return node
	case reflect.Slice, reflect.Array:
		return e.sliceToYAMLNode(v)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%v", v.Interface())}
	}
}

// Handle map types, keys are sorted
func (e *Encoder) mapToYAMLNode(v reflect.Value) *yaml.Node {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(key.Interface())}
		node.Content = append(node.Content, keyNode, e.getValueNode(v.MapIndex(key)))
	}
	return node
}

// Handle slice/array types
func (e *Encoder) sliceToYAMLNode(v reflect.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for i := 0; i < v.Len(); i++ {
		node.Content = append(node.Content, e.getValueNode(v.Index(i)))
	}
	return node
}

var descriptionRegex = regexp.MustCompile(`description=((?:\\,|[^,])+)`)

// Parse description from jsonschema
func extractDescription(tag string) string {
	matches := descriptionRegex.FindStringSubmatch(tag)
	if len(matches) > 1 {
		return strings.TrimSpace(strings.ReplaceAll(matches[1], `\,`, ","))
	}
	return ""
}

// Recursively dereference pointers until `v` is not a pointer type
func dereference(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
