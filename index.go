package propgen

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/simonrw/cfn-propgen/schema"
)

// Index is the immutable mapping from resource type name to schema document.
// It is built once and is safe for unsynchronized concurrent reads; nothing
// mutates a Document after load.
type Index struct {
	docs map[string]*schema.Document
}

// LoadIndex decodes a merged schema artifact (a JSON array of per-type schema
// objects) and indexes it by typeName. A missing or repeated typeName fails
// with malformed_schema.
func LoadIndex(data []byte) (*Index, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, schemaErrf(CodeMalformedSchema, "", "merged schema artifact is not a JSON array of objects: %v", err)
	}
	docs := make([]*schema.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, schema.NewDocument(m))
	}
	return NewIndex(docs)
}

// NewIndex builds an Index from already-decoded documents, enforcing the
// unique-typeName invariant.
func NewIndex(docs []*schema.Document) (*Index, error) {
	ix := &Index{docs: make(map[string]*schema.Document, len(docs))}
	for i, d := range docs {
		if d.TypeName == "" {
			return nil, schemaErrf(CodeMalformedSchema, "", "schema entry %d has no typeName", i)
		}
		if _, dup := ix.docs[d.TypeName]; dup {
			return nil, schemaErrf(CodeMalformedSchema, "", "duplicate typeName %q", d.TypeName)
		}
		ix.docs[d.TypeName] = d
	}
	return ix, nil
}

// Lookup returns the schema document for an exact type name. There is no
// fuzzy or partial matching; a miss fails with unknown_type.
func (ix *Index) Lookup(typeName string) (*schema.Document, error) {
	d, ok := ix.docs[typeName]
	if !ok {
		return nil, schemaErrf(CodeUnknownType, "", "no schema for resource type %q", typeName)
	}
	return d, nil
}

// Types returns all indexed type names, sorted.
func (ix *Index) Types() []string {
	names := make([]string, 0, len(ix.docs))
	for n := range ix.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of indexed resource types.
func (ix *Index) Len() int { return len(ix.docs) }
