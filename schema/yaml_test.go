package schema_test

import (
	"testing"

	"github.com/simonrw/cfn-propgen/schema"
)

func TestDocumentsFromYAML_MultiDocument(t *testing.T) {
	src := []byte(`typeName: Demo::First
type: object
required: [Name]
properties:
  Name:
    type: string
---
typeName: Demo::Second
type: string
enum: [a, b]
`)
	docs, err := schema.DocumentsFromYAML(src)
	if err != nil {
		t.Fatalf("yaml err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].TypeName != "Demo::First" || docs[1].TypeName != "Demo::Second" {
		t.Fatalf("typeNames = %q, %q", docs[0].TypeName, docs[1].TypeName)
	}
	if docs[0].Root.Properties["Name"].Kind != schema.KindString {
		t.Fatalf("yaml schema not normalized into the node model: %+v", docs[0].Root)
	}
	if len(docs[1].Root.Enum) != 2 {
		t.Fatalf("enum lost in normalization: %+v", docs[1].Root)
	}
	// Raw must be JSON-shaped so $ref pointers evaluate the same way
	if _, ok := docs[0].Raw["properties"].(map[string]any); !ok {
		t.Fatalf("raw tree not normalized: %#v", docs[0].Raw["properties"])
	}
}

func TestDocumentsFromYAML_SkipsNonMapDocuments(t *testing.T) {
	src := []byte("- just\n- a\n- list\n---\ntypeName: Demo::Only\ntype: object\n")
	docs, err := schema.DocumentsFromYAML(src)
	if err != nil {
		t.Fatalf("yaml err: %v", err)
	}
	if len(docs) != 1 || docs[0].TypeName != "Demo::Only" {
		t.Fatalf("expected the single mapping document, got %+v", docs)
	}
}
