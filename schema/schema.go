package schema

// Package schema holds the typed model for CloudFormation resource provider
// schemas. Documents are decoded once and treated as immutable; the generator
// layers above never mutate a Node after construction.

// Kind identifies the declared type of a schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Node is one schema node in closed, tagged form. Composition keywords
// ($ref, oneOf/anyOf, allOf) and literal keywords (enum, const) are carried
// as fields rather than separate kinds so that dispatch over them stays
// exhaustive.
type Node struct {
	Kind       Kind
	Properties map[string]*Node
	Required   []string

	// Items describes array elements. TupleItems is set instead when the
	// document declares items as a list of schemas, one per position.
	Items      *Node
	TupleItems []*Node

	// Enum, when non-empty, overrides kind-based synthesis. Const wins over
	// both; HasConst distinguishes an explicit null from absence.
	Enum     []any
	Const    any
	HasConst bool

	// Ref is a local JSON Pointer ("#/definitions/...") into the owning
	// document. A resolved tree never contains one.
	Ref string

	// OneOf lists alternatives of which exactly one is selected. anyOf is
	// folded in here as well; picking a single branch satisfies both.
	OneOf []*Node

	// AllOf lists schemas whose properties and required sets are merged
	// during resolution.
	AllOf []*Node

	// Constraints records semantic-only bounds (length, range, pattern,
	// format and friends). They are preserved for callers to inspect but
	// never enforced during generation.
	Constraints map[string]any
}

// Document is one resource type's schema: the raw decoded JSON tree (kept for
// $ref pointer evaluation) plus the typed root node. Read-only after load.
type Document struct {
	TypeName string
	Raw      map[string]any
	Root     *Node
}

// NewDocument builds a Document from a decoded JSON object. TypeName is taken
// from the document's "typeName" field and is empty when absent; the index
// layer decides whether that is an error.
func NewDocument(raw map[string]any) *Document {
	tn, _ := raw["typeName"].(string)
	return &Document{TypeName: tn, Raw: raw, Root: NodeFromRaw(raw)}
}
