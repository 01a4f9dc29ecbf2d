package loaders

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-radiometer/pkg/core"
)

var (
	ErrUnrecognizedParameter = errors.New("unrecognized parameter")
	ErrUnknownType           = errors.New("unknown type")
	ErrInvalidValue          = errors.New("invalid value")
)

// Properties is one mapping node of a scene description. Every key read
// through it is remembered so that leftover (misspelled or unsupported) keys
// can be reported once the node has been consumed.
type Properties struct {
	path    string
	keys    []string
	values  map[string]*yaml.Node
	queried map[string]bool
}

func newProperties(path string, node *yaml.Node) (*Properties, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s must be a mapping (line %d)", ErrInvalidValue, path, node.Line)
	}
	p := &Properties{
		path:    path,
		values:  make(map[string]*yaml.Node, len(node.Content)/2),
		queried: make(map[string]bool),
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := p.values[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %s.%s (line %d)", ErrInvalidValue, path, key, node.Content[i].Line)
		}
		p.keys = append(p.keys, key)
		p.values[key] = node.Content[i+1]
	}
	return p, nil
}

// Path returns the location of the node in the document, e.g. "sensors[0].film"
func (p *Properties) Path() string {
	return p.path
}

// Has reports whether key is present, marking it as queried
func (p *Properties) Has(key string) bool {
	_, ok := p.values[key]
	if ok {
		p.queried[key] = true
	}
	return ok
}

func (p *Properties) lookup(key string) (*yaml.Node, bool) {
	node, ok := p.values[key]
	if ok {
		p.queried[key] = true
	}
	return node, ok
}

func (p *Properties) decode(key string, out interface{}) (bool, error) {
	node, ok := p.lookup(key)
	if !ok {
		return false, nil
	}
	if err := node.Decode(out); err != nil {
		return true, fmt.Errorf("%w: %s.%s (line %d): %v", ErrInvalidValue, p.path, key, node.Line, err)
	}
	return true, nil
}

// String returns the string at key or def
func (p *Properties) String(key, def string) (string, error) {
	v := def
	_, err := p.decode(key, &v)
	return v, err
}

// Float returns the number at key or def
func (p *Properties) Float(key string, def float64) (float64, error) {
	v := def
	_, err := p.decode(key, &v)
	return v, err
}

// Int returns the integer at key or def
func (p *Properties) Int(key string, def int) (int, error) {
	v := def
	_, err := p.decode(key, &v)
	return v, err
}

// Uint64 returns the unsigned integer at key or def
func (p *Properties) Uint64(key string, def uint64) (uint64, error) {
	v := def
	_, err := p.decode(key, &v)
	return v, err
}

// Floats returns the number list at key, or nil when absent
func (p *Properties) Floats(key string) ([]float64, error) {
	var v []float64
	_, err := p.decode(key, &v)
	return v, err
}

// Vec3 returns the [x, y, z] triple at key, or nil when absent
func (p *Properties) Vec3(key string) (*core.Vec3, error) {
	values, err := p.Floats(key)
	if err != nil || values == nil {
		return nil, err
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("%w: %s.%s needs 3 components, got %d", ErrInvalidValue, p.path, key, len(values))
	}
	v := core.NewVec3(values[0], values[1], values[2])
	return &v, nil
}

// Child returns the nested mapping at key, or nil when absent
func (p *Properties) Child(key string) (*Properties, error) {
	node, ok := p.lookup(key)
	if !ok {
		return nil, nil
	}
	return newProperties(p.path+"."+key, node)
}

// List returns the sequence of mappings at key
func (p *Properties) List(key string) ([]*Properties, error) {
	node, ok := p.lookup(key)
	if !ok {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %s.%s must be a list (line %d)", ErrInvalidValue, p.path, key, node.Line)
	}
	items := make([]*Properties, 0, len(node.Content))
	for i, item := range node.Content {
		child, err := newProperties(fmt.Sprintf("%s.%s[%d]", p.path, key, i), item)
		if err != nil {
			return nil, err
		}
		items = append(items, child)
	}
	return items, nil
}

// IsScalar reports whether the value at key is a plain scalar
func (p *Properties) IsScalar(key string) bool {
	node, ok := p.values[key]
	return ok && node.Kind == yaml.ScalarNode
}

// Type returns the node's required "type" key
func (p *Properties) Type() (string, error) {
	if !p.Has("type") {
		return "", fmt.Errorf("%w: %s has no type", ErrUnknownType, p.path)
	}
	return p.String("type", "")
}

// CheckUnqueried reports every key that was never read
func (p *Properties) CheckUnqueried() error {
	var unused []string
	for _, key := range p.keys {
		if !p.queried[key] {
			unused = append(unused, key)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	sort.Strings(unused)
	return fmt.Errorf("%w: %s: %s", ErrUnrecognizedParameter, p.path, strings.Join(unused, ", "))
}
