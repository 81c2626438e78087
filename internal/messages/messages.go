// Package messages loads the per-locale UI string catalogues.
package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Catalogue maps dotted keys such as "HomePage.title" to translated strings.
type Catalogue map[string]string

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads a JSON catalogue (optionally gzipped) and flattens it.
	Load(ctx context.Context, name string) (Catalogue, error)
}

// T returns the string for key, or the key itself when it is missing.
func (c Catalogue) T(key string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return key
}

// Format returns the string for key with every {name} placeholder replaced.
func (c Catalogue) Format(key string, args map[string]any) string {
	s := c.T(key)
	if len(args) == 0 {
		return s
	}
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(args))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(args[name]))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// parse flattens nested JSON objects into dotted keys. Non-string leaves are
// rejected.
func parse(data []byte) (Catalogue, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid catalogue JSON: %w", err)
	}
	out := make(Catalogue)
	if err := flatten("", raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out Catalogue) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("catalogue key %q: expected string or object, got %T", key, v)
		}
	}
	return nil
}
