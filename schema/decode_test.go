package schema_test

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/simonrw/cfn-propgen/schema"
)

func fromJSON(t *testing.T, src string) *schema.Node {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("bad test schema: %v", err)
	}
	return schema.NodeFromRaw(raw)
}

func TestNodeFromRaw_Object(t *testing.T) {
	n := fromJSON(t, `{
	  "type": "object",
	  "required": ["Name"],
	  "properties": {
	    "Name": {"type": "string"},
	    "Count": {"type": "integer"}
	  }
	}`)
	if n.Kind != schema.KindObject {
		t.Fatalf("kind = %q", n.Kind)
	}
	if len(n.Required) != 1 || n.Required[0] != "Name" {
		t.Fatalf("required = %v", n.Required)
	}
	if n.Properties["Name"].Kind != schema.KindString || n.Properties["Count"].Kind != schema.KindInteger {
		t.Fatalf("properties = %+v", n.Properties)
	}
}

func TestNodeFromRaw_ItemsForms(t *testing.T) {
	single := fromJSON(t, `{"type": "array", "items": {"type": "string"}}`)
	if single.Items == nil || single.Items.Kind != schema.KindString || single.TupleItems != nil {
		t.Fatalf("single items mis-decoded: %+v", single)
	}

	tuple := fromJSON(t, `{"type": "array", "items": [{"type": "string"}, {"type": "integer"}]}`)
	if tuple.Items != nil || len(tuple.TupleItems) != 2 {
		t.Fatalf("tuple items mis-decoded: %+v", tuple)
	}
	if tuple.TupleItems[1].Kind != schema.KindInteger {
		t.Fatalf("tuple member kind = %q", tuple.TupleItems[1].Kind)
	}
}

func TestNodeFromRaw_ContainsAsItems(t *testing.T) {
	n := fromJSON(t, `{"type": "array", "contains": {"type": "integer"}}`)
	if n.Items == nil || n.Items.Kind != schema.KindInteger {
		t.Fatalf("contains should supply the element schema, got %+v", n)
	}

	// items wins when both are present
	both := fromJSON(t, `{"type": "array", "items": {"type": "string"}, "contains": {"type": "integer"}}`)
	if both.Items == nil || both.Items.Kind != schema.KindString {
		t.Fatalf("items should take precedence over contains, got %+v", both)
	}
}

func TestNodeFromRaw_LiteralsAndRef(t *testing.T) {
	n := fromJSON(t, `{"enum": ["A", "B"], "const": null, "$ref": "#/definitions/X"}`)
	if len(n.Enum) != 2 {
		t.Fatalf("enum = %v", n.Enum)
	}
	if !n.HasConst || n.Const != nil {
		t.Fatalf("const null should be recorded: %+v", n)
	}
	if n.Ref != "#/definitions/X" {
		t.Fatalf("ref = %q", n.Ref)
	}
}

func TestNodeFromRaw_AnyOfFoldsIntoOneOf(t *testing.T) {
	n := fromJSON(t, `{
	  "oneOf": [{"type": "string"}],
	  "anyOf": [{"type": "integer"}, {"type": "boolean"}]
	}`)
	if len(n.OneOf) != 3 {
		t.Fatalf("expected oneOf+anyOf folded, got %d alternatives", len(n.OneOf))
	}
	if len(n.AllOf) != 0 {
		t.Fatalf("allOf should be empty")
	}
}

func TestNodeFromRaw_ConstraintsRecordedNotTyped(t *testing.T) {
	n := fromJSON(t, `{
	  "type": "string",
	  "minLength": 1,
	  "maxLength": 64,
	  "pattern": "^a",
	  "format": "uri",
	  "insertionOrder": false
	}`)
	for _, k := range []string{"minLength", "maxLength", "pattern", "format", "insertionOrder"} {
		if _, ok := n.Constraints[k]; !ok {
			t.Fatalf("constraint %q not recorded: %v", k, n.Constraints)
		}
	}
}

func TestNewDocument(t *testing.T) {
	var raw map[string]any
	src := `{"typeName": "Demo::Thing", "type": "object", "properties": {"A": {"type": "string"}}}`
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	d := schema.NewDocument(raw)
	if d.TypeName != "Demo::Thing" {
		t.Fatalf("typeName = %q", d.TypeName)
	}
	if d.Root == nil || d.Root.Properties["A"] == nil {
		t.Fatalf("root not parsed: %+v", d.Root)
	}
	if d.Raw == nil {
		t.Fatalf("raw tree must be retained for pointer resolution")
	}
}
