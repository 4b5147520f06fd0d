// Package ffyaml reads ff config files written in YAML with gopkg.in/yaml.v3.
//
// Top-level scalars set the flag of the same name. Nested mappings join
// their keys with a dash, so
//
//	display:
//	  loctr: 10
//
// sets -display-loctr. Sequences set the flag once per element.
package ffyaml

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Parser satisfies ff.ConfigFileParser.
func Parser(r io.Reader, set func(name, value string) error) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("yaml config: %w", err)
	}
	return walk("", doc, set)
}

func walk(prefix string, m map[string]any, set func(name, value string) error) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "-" + k
		}
		if err := apply(name, m[k], set); err != nil {
			return err
		}
	}
	return nil
}

func apply(name string, v any, set func(name, value string) error) error {
	switch v := v.(type) {
	case map[string]any:
		return walk(name, v, set)
	case []any:
		for _, e := range v {
			if err := apply(name, e, set); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	}
	s, err := scalar(v)
	if err != nil {
		return fmt.Errorf("yaml config: %s: %w", name, err)
	}
	if err := set(name, s); err != nil {
		return fmt.Errorf("yaml config: %s: %w", name, err)
	}
	return nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported value %v (%T)", v, v)
}
