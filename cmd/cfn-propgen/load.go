package main

import (
	"os"
	"strings"

	propgen "github.com/simonrw/cfn-propgen"
	"github.com/simonrw/cfn-propgen/schema"
)

// loadIndex reads the merged schema artifact. The vendor artifact is JSON;
// YAML is accepted by extension for hand-authored schema files.
func loadIndex(path string) (*propgen.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		docs, err := schema.DocumentsFromYAML(data)
		if err != nil {
			return nil, err
		}
		return propgen.NewIndex(docs)
	}
	return propgen.LoadIndex(data)
}
