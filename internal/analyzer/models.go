package analyzer

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field annotations. The engine only infers presence and optionality, never value types.
const (
	FieldRequired = "string"
	FieldOptional = "string (optional)"
)

// RouteGroup is a base path plus the sub-routes one router unit registered under it.
type RouteGroup struct {
	BasePath string     `json:"basePath" yaml:"basePath"`
	Routes   []RouteDef `json:"routes" yaml:"routes"`
}

type RouteDef struct {
	SubPath string   `json:"path" yaml:"path"`
	Methods []string `json:"methods" yaml:"methods"`
}

// ControllerEntry maps a route-group base path to the controller file believed to implement it.
type ControllerEntry struct {
	Key  string
	Path string
}

// ControllerIndex keeps entries in directory listing order so prefix lookups are deterministic.
type ControllerIndex struct {
	entries []ControllerEntry
}

func (ci *ControllerIndex) add(key, path string) {
	ci.entries = append(ci.entries, ControllerEntry{Key: key, Path: path})
}

// Lookup returns the first entry whose key is a prefix of fullPath.
func (ci *ControllerIndex) Lookup(fullPath string) (ControllerEntry, bool) {
	if ci == nil {
		return ControllerEntry{}, false
	}
	for _, entry := range ci.entries {
		if strings.HasPrefix(fullPath, entry.Key) {
			return entry, true
		}
	}
	return ControllerEntry{}, false
}

func (ci *ControllerIndex) Entries() []ControllerEntry {
	if ci == nil {
		return nil
	}
	return append([]ControllerEntry(nil), ci.entries...)
}

func (ci *ControllerIndex) Len() int {
	if ci == nil {
		return 0
	}
	return len(ci.entries)
}

// FunctionInventory lists distinct function names in order of first appearance.
type FunctionInventory []string

// FieldSchema is an insertion-ordered mapping of field name to annotation.
type FieldSchema struct {
	keys   []string
	values map[string]string
}

func NewFieldSchema() *FieldSchema {
	return &FieldSchema{values: make(map[string]string)}
}

// Set records a field. A repeated field keeps its first position and takes the new annotation.
func (fs *FieldSchema) Set(name, annotation string) {
	if fs.values == nil {
		fs.values = make(map[string]string)
	}
	if _, exists := fs.values[name]; !exists {
		fs.keys = append(fs.keys, name)
	}
	fs.values[name] = annotation
}

func (fs *FieldSchema) Get(name string) (string, bool) {
	if fs == nil {
		return "", false
	}
	v, ok := fs.values[name]
	return v, ok
}

func (fs *FieldSchema) Keys() []string {
	if fs == nil {
		return nil
	}
	return append([]string(nil), fs.keys...)
}

func (fs *FieldSchema) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.keys)
}

// IsOptional reports whether the field was classified as optional.
func (fs *FieldSchema) IsOptional(name string) bool {
	v, _ := fs.Get(name)
	return v == FieldOptional
}

// Map returns an unordered copy, mostly useful for comparisons.
func (fs *FieldSchema) Map() map[string]string {
	out := make(map[string]string, fs.Len())
	if fs == nil {
		return out
	}
	for k, v := range fs.values {
		out[k] = v
	}
	return out
}

func (fs *FieldSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range fs.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fs.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (fs *FieldSchema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*fs = FieldSchema{values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fs.Set(key, value)
	}
	_, err := dec.Token()
	return err
}

func (fs *FieldSchema) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range fs.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fs.values[key]},
		)
	}
	return node, nil
}

// RouteDescriptor is the output unit of a listing pass.
type RouteDescriptor struct {
	Path    string            `json:"path" yaml:"path"`
	Method  string            `json:"method" yaml:"method"`
	Body    *FieldSchema      `json:"body" yaml:"body"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// MarshalYAML writes absent headers as null, matching the JSON form.
func (d RouteDescriptor) MarshalYAML() (interface{}, error) {
	var headers interface{}
	if d.Headers != nil {
		headers = d.Headers
	}
	return struct {
		Path    string       `yaml:"path"`
		Method  string       `yaml:"method"`
		Body    *FieldSchema `yaml:"body"`
		Headers interface{}  `yaml:"headers"`
	}{d.Path, d.Method, d.Body, headers}, nil
}

// MatchKind tags which resolution strategy produced a function name.
type MatchKind string

const (
	ExactMatch   MatchKind = "exact"
	PatternMatch MatchKind = "pattern"
	FuzzyMatch   MatchKind = "fuzzy"
)

type Resolution struct {
	Function  string
	Strategy  MatchKind
	Candidate string
}
