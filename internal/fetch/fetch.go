package fetch

// Package fetch is the acquisition glue: it downloads the vendor-published
// ZIP of per-type resource schemas and merges the documents into the single
// sorted array the generator consumes. Nothing in the core pipeline depends
// on this package; it exists for the CLI's fetch subcommand.

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultURL is the CloudFormation resource provider schema bundle for
// us-east-1, the region with the broadest type coverage.
const DefaultURL = "https://schema.cloudformation.us-east-1.amazonaws.com/CloudformationSchema.zip"

// Bundle downloads the schema ZIP from url and returns the merged document
// array, sorted by typeName. A document without a typeName or a repeated
// typeName fails the whole merge; the artifact contract promises unique
// names.
func Bundle(ctx context.Context, client *http.Client, url string) ([]map[string]any, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	docs, err := unpack(body)
	if err != nil {
		return nil, err
	}
	return Merge(docs)
}

// unpack decodes every .json entry in the ZIP into a schema document.
func unpack(zipped []byte) ([]map[string]any, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipped), int64(len(zipped)))
	if err != nil {
		return nil, fmt.Errorf("schema bundle is not a ZIP: %w", err)
	}
	var docs []map[string]any
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("entry %s: %w", f.Name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Merge enforces the unique-typeName contract and sorts by typeName. Sort
// order is not needed by the index, but a stable artifact diffs cleanly.
func Merge(docs []map[string]any) ([]map[string]any, error) {
	seen := make(map[string]bool, len(docs))
	for i, doc := range docs {
		tn, _ := doc["typeName"].(string)
		if tn == "" {
			return nil, fmt.Errorf("document %d has no typeName", i)
		}
		if seen[tn] {
			return nil, fmt.Errorf("duplicate typeName %q", tn)
		}
		seen[tn] = true
	}
	out := append([]map[string]any(nil), docs...)
	sort.Slice(out, func(i, j int) bool {
		ti, _ := out[i]["typeName"].(string)
		tj, _ := out[j]["typeName"].(string)
		return ti < tj
	})
	return out, nil
}

// WriteMerged renders the merged array as indented JSON.
func WriteMerged(w io.Writer, docs []map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
