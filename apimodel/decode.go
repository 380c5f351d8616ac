package apimodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
)

// keySet records which keys an encoded object carries, so required fields
// can be told apart from zero values.
type keySet map[string]bool

func jsonKeys(entity string, data []byte) (keySet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", entity, err)
	}
	keys := make(keySet, len(raw))
	for k := range raw {
		keys[k] = true
	}
	return keys, nil
}

func yamlKeys(entity string, node *yaml.Node) (keySet, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode %s: line %d: expected a mapping", entity, node.Line)
	}
	keys := make(keySet, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys[node.Content[i].Value] = true
	}
	return keys, nil
}

func (k keySet) require(entity string, fields ...string) error {
	var errs []error
	for _, field := range fields {
		if !k[field] {
			errs = append(errs, fieldError(entity, field, ErrMissingField))
		}
	}
	return errors.Join(errs...)
}

func (k keySet) hasAny(fields ...string) bool {
	for _, field := range fields {
		if k[field] {
			return true
		}
	}
	return false
}
