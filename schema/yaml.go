package schema

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// DocumentsFromYAML reads a multi-document YAML stream and returns one
// Document per stream entry. YAML maps are normalized to JSON-shaped
// map[string]any first so pointer resolution sees the same tree either way.
func DocumentsFromYAML(data []byte) ([]*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []*Document
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		m := yamlToStringMap(node)
		if m == nil {
			continue
		}
		docs = append(docs, NewDocument(m))
	}
	return docs, nil
}

// yamlToStringMap converts YAML-decoded values (which may contain
// map[any]any) into map[string]any recursively. Non-map roots return nil.
func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalize(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalize(t[i])
		}
		return arr
	default:
		return v
	}
}
