package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// formatter renders a generated document. This is the thin serialization
// adapter; the library hands back plain values and knows nothing about it.
type formatter interface {
	dump(v any, w io.Writer) error
}

type jsonFormatter struct{}

func (jsonFormatter) dump(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type yamlFormatter struct{}

func (yamlFormatter) dump(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func formatterFor(format string) (formatter, error) {
	switch format {
	case "json":
		return jsonFormatter{}, nil
	case "yaml":
		return yamlFormatter{}, nil
	default:
		return nil, fmt.Errorf("invalid format %q (must be json or yaml)", format)
	}
}
