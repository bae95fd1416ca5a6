package packages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvVar describes an environment variable a package reads at startup.
type EnvVar struct {
	Name        string `json:"-" yaml:"-"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// EnvVars is the ordered set of environment variables a package declares.
// It (de)serializes as a JSON object keyed by variable name, preserving the key order of the source document.
type EnvVars []EnvVar

// Names returns the variable names in declaration order.
func (e EnvVars) Names() []string {
	names := make([]string, len(e))
	for i, v := range e {
		names[i] = v.Name
	}

	return names
}

// Get returns the variable with the given name.
func (e EnvVars) Get(name string) (EnvVar, bool) {
	i := slices.IndexFunc(e, func(v EnvVar) bool { return v.Name == name })
	if i == -1 {
		return EnvVar{}, false
	}

	return e[i], true
}

// FilterBy returns the variables for which every predicate holds, keeping declaration order.
func (e EnvVars) FilterBy(predicate ...func(v EnvVar) bool) EnvVars {
	var result EnvVars
next:
	for _, v := range e {
		for _, p := range predicate {
			if !p(v) {
				continue next
			}
		}
		result = append(result, v)
	}

	return result
}

// Required is a predicate that requires the variable is required.
func Required(v EnvVar) bool {
	return v.Required
}

// Optional is a predicate that requires the variable is optional.
func Optional(v EnvVar) bool {
	return !v.Required
}

// UnmarshalJSON decodes a JSON object into EnvVars in key order.
func (e *EnvVars) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("environment variables must be a JSON object")
	}

	var vars EnvVars
	seen := map[string]struct{}{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("environment variable name must be a string")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate environment variable '%s'", name)
		}
		seen[name] = struct{}{}

		var v EnvVar
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("environment variable '%s': %w", name, err)
		}
		v.Name = name
		vars = append(vars, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*e = vars
	return nil
}

// MarshalJSON encodes EnvVars as a JSON object in declaration order.
func (e EnvVars) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes EnvVars as a YAML mapping in declaration order.
func (e EnvVars) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range e {
		var val yaml.Node
		if err := val.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v.Name}, &val)
	}

	return node, nil
}
