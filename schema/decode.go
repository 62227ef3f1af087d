package schema

// constraintKeys are the semantic-only bounds we record but never enforce.
var constraintKeys = []string{
	"minLength", "maxLength", "pattern", "format",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minItems", "maxItems", "uniqueItems", "insertionOrder",
}

// NodeFromRaw converts a decoded JSON object into a Node. Keys it does not
// recognize (documentation, handlers, typeName, definitions, ...) are simply
// ignored; they remain reachable through Document.Raw for pointer resolution.
func NodeFromRaw(m map[string]any) *Node {
	if m == nil {
		return nil
	}
	n := &Node{}

	if t, ok := m["type"].(string); ok {
		n.Kind = Kind(t)
	}

	if pm, ok := m["properties"].(map[string]any); ok {
		n.Properties = make(map[string]*Node, len(pm))
		for name, raw := range pm {
			if sub, ok := raw.(map[string]any); ok {
				n.Properties[name] = NodeFromRaw(sub)
			}
		}
	}

	if req, ok := m["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				n.Required = append(n.Required, s)
			}
		}
	}

	// "contains" stands in for the element schema when "items" is absent:
	// a sequence whose every element satisfies the contained schema also
	// contains one.
	items, ok := m["items"]
	if !ok {
		items = m["contains"]
	}
	switch it := items.(type) {
	case map[string]any:
		n.Items = NodeFromRaw(it)
	case []any:
		// Tuple form: one schema per position.
		for _, raw := range it {
			if sub, ok := raw.(map[string]any); ok {
				n.TupleItems = append(n.TupleItems, NodeFromRaw(sub))
			}
		}
	}

	if en, ok := m["enum"].([]any); ok {
		n.Enum = en
	}
	if c, ok := m["const"]; ok {
		n.Const = c
		n.HasConst = true
	}

	if ref, ok := m["$ref"].(string); ok {
		n.Ref = ref
	}

	n.OneOf = nodeList(m["oneOf"])
	// anyOf is satisfied by any single branch, so selecting one the way
	// oneOf does is always structurally valid.
	n.OneOf = append(n.OneOf, nodeList(m["anyOf"])...)
	n.AllOf = nodeList(m["allOf"])

	for _, k := range constraintKeys {
		if v, ok := m[k]; ok {
			if n.Constraints == nil {
				n.Constraints = make(map[string]any)
			}
			n.Constraints[k] = v
		}
	}

	return n
}

func nodeList(v any) []*Node {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []*Node
	for _, r := range raw {
		if m, ok := r.(map[string]any); ok {
			out = append(out, NodeFromRaw(m))
		}
	}
	return out
}
