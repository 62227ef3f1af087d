package propgen

import (
	"strconv"
	"strings"

	"dario.cat/mergo"

	"github.com/simonrw/cfn-propgen/schema"
)

// MergePrecedence decides which alternative wins when allOf members declare
// the same property name.
type MergePrecedence int

const (
	LastAlternativeWins MergePrecedence = iota
	FirstAlternativeWins
)

// ResolveOpt bundles resolution options.
type ResolveOpt struct {
	Precedence MergePrecedence
}

// Resolve returns a copy of the node tree with every local $ref replaced by
// the pointed-to node's resolved content and every allOf merged away. The
// input is never mutated, and resolution of a fixed document is
// deterministic, so results may be cached by the caller.
//
// A reference that points back onto the current resolution path is a cycle;
// it is replaced by an empty object node rather than reported as an error.
// Cyclic schemas are common in resource-composition schemas, and an empty
// object trivially satisfies any structural shape requirement for that
// branch. Only a genuinely dangling pointer fails, with
// unresolved_reference.
func Resolve(n *schema.Node, doc *schema.Document) (*schema.Node, error) {
	return ResolveWith(n, doc, ResolveOpt{})
}

// ResolveWith is Resolve with explicit options.
func ResolveWith(n *schema.Node, doc *schema.Document, opt ResolveOpt) (*schema.Node, error) {
	r := &resolver{doc: doc, opt: opt, onPath: make(map[string]bool)}
	return r.resolve(n, "")
}

type resolver struct {
	doc *schema.Document
	opt ResolveOpt
	// onPath holds the $ref pointers currently being expanded. Membership
	// means a reference chain has returned to itself.
	onPath map[string]bool
}

func (r *resolver) resolve(n *schema.Node, path string) (*schema.Node, error) {
	if n == nil {
		return nil, nil
	}

	if n.Ref != "" {
		return r.resolveRef(n, path)
	}

	out := &schema.Node{
		Kind:     n.Kind,
		Enum:     n.Enum,
		Const:    n.Const,
		HasConst: n.HasConst,
	}
	if len(n.Required) > 0 {
		out.Required = append([]string(nil), n.Required...)
	}
	if len(n.Constraints) > 0 {
		out.Constraints = make(map[string]any, len(n.Constraints))
		for k, v := range n.Constraints {
			out.Constraints[k] = v
		}
	}

	if n.Properties != nil {
		out.Properties = make(map[string]*schema.Node, len(n.Properties))
		for name, child := range n.Properties {
			rc, err := r.resolve(child, path+"/properties/"+name)
			if err != nil {
				return nil, err
			}
			out.Properties[name] = rc
		}
	}

	if n.Items != nil {
		ri, err := r.resolve(n.Items, path+"/items")
		if err != nil {
			return nil, err
		}
		out.Items = ri
	}
	for i, ti := range n.TupleItems {
		rt, err := r.resolve(ti, path+"/items/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out.TupleItems = append(out.TupleItems, rt)
	}

	for i, alt := range n.OneOf {
		ra, err := r.resolve(alt, path+"/oneOf/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, ra)
	}

	// allOf merges into the node itself: property union, required union.
	for i, alt := range n.AllOf {
		ra, err := r.resolve(alt, path+"/allOf/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		override := r.opt.Precedence == LastAlternativeWins
		if err := mergeInto(out, ra, override); err != nil {
			return nil, err
		}
	}

	if len(out.OneOf) > 0 {
		return distributeOneOf(out)
	}
	return out, nil
}

// distributeOneOf pushes a node's own fields down into each alternative, the
// way sibling keys of a combiner apply to every branch: a node declaring
// properties next to oneOf means each alternative carries those properties.
// The result is a pure selection node, so picking an alternative picks a
// complete schema.
func distributeOneOf(n *schema.Node) (*schema.Node, error) {
	if len(n.OneOf) == 0 {
		return n, nil
	}
	base := cloneNode(n)
	alts := base.OneOf
	base.OneOf = nil
	out := &schema.Node{OneOf: make([]*schema.Node, 0, len(alts))}
	for _, alt := range alts {
		merged := cloneNode(base)
		if err := mergeInto(merged, alt, true); err != nil {
			return nil, err
		}
		// An alternative may itself be a selection; keep flattening so no
		// mixed field/oneOf node survives resolution.
		flat, err := distributeOneOf(merged)
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, flat)
	}
	return out, nil
}

// cloneNode copies a node with fresh containers so merges into the clone
// cannot leak into the source.
func cloneNode(n *schema.Node) *schema.Node {
	c := *n
	if n.Properties != nil {
		c.Properties = make(map[string]*schema.Node, len(n.Properties))
		for k, v := range n.Properties {
			c.Properties[k] = v
		}
	}
	if n.Constraints != nil {
		c.Constraints = make(map[string]any, len(n.Constraints))
		for k, v := range n.Constraints {
			c.Constraints[k] = v
		}
	}
	c.Required = append([]string(nil), n.Required...)
	c.OneOf = append([]*schema.Node(nil), n.OneOf...)
	c.TupleItems = append([]*schema.Node(nil), n.TupleItems...)
	return &c
}

// resolveRef expands one $ref node. Explicit fields declared next to the
// $ref override the referenced content, matching how combiner-produced
// sibling keys behave in the source schemas; they apply at a cycle
// placeholder the same way.
func (r *resolver) resolveRef(n *schema.Node, path string) (*schema.Node, error) {
	var resolved *schema.Node
	if r.onPath[n.Ref] {
		// Reference chain returned to itself: substitute a terminal empty
		// object so the branch stays structurally valid and finite.
		resolved = &schema.Node{Kind: schema.KindObject}
	} else {
		raw, ok := pointerLookup(r.doc.Raw, n.Ref)
		if !ok {
			return nil, schemaErrf(CodeUnresolvedReference, path, "$ref %q does not resolve within the document", n.Ref)
		}
		target, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaErrf(CodeUnresolvedReference, path, "$ref %q points at a non-schema value", n.Ref)
		}
		r.onPath[n.Ref] = true
		rt, err := r.resolve(schema.NodeFromRaw(target), path)
		delete(r.onPath, n.Ref)
		if err != nil {
			return nil, err
		}
		resolved = rt
	}

	sibling := *n
	sibling.Ref = ""
	rs, err := r.resolve(&sibling, path)
	if err != nil {
		return nil, err
	}
	if err := mergeInto(resolved, rs, true); err != nil {
		return nil, err
	}
	return distributeOneOf(resolved)
}

// mergeInto folds src into dst. With override, src wins on collisions;
// otherwise src only fills what dst leaves unset. Required is always the
// union, preserving first-appearance order.
func mergeInto(dst, src *schema.Node, override bool) error {
	if src == nil {
		return nil
	}
	if src.Kind != "" && (override || dst.Kind == "") {
		dst.Kind = src.Kind
	}
	if len(src.Enum) > 0 && (override || dst.Enum == nil) {
		dst.Enum = src.Enum
	}
	if src.HasConst && (override || !dst.HasConst) {
		dst.Const = src.Const
		dst.HasConst = true
	}
	if src.Items != nil && (override || dst.Items == nil) {
		dst.Items = src.Items
	}
	if len(src.TupleItems) > 0 && (override || dst.TupleItems == nil) {
		dst.TupleItems = src.TupleItems
	}
	if len(src.OneOf) > 0 {
		dst.OneOf = append(dst.OneOf, src.OneOf...)
	}

	if len(src.Properties) > 0 {
		if dst.Properties == nil {
			dst.Properties = make(map[string]*schema.Node, len(src.Properties))
		}
		for name, child := range src.Properties {
			if _, exists := dst.Properties[name]; exists && !override {
				continue
			}
			dst.Properties[name] = child
		}
	}

	if len(src.Required) > 0 {
		seen := make(map[string]bool, len(dst.Required))
		for _, name := range dst.Required {
			seen[name] = true
		}
		for _, name := range src.Required {
			if !seen[name] {
				dst.Required = append(dst.Required, name)
				seen[name] = true
			}
		}
	}

	if len(src.Constraints) > 0 {
		if dst.Constraints == nil {
			dst.Constraints = make(map[string]any, len(src.Constraints))
		}
		opts := []func(*mergo.Config){}
		if override {
			opts = append(opts, mergo.WithOverride)
		}
		if err := mergo.Merge(&dst.Constraints, src.Constraints, opts...); err != nil {
			return err
		}
	}
	return nil
}

// pointerLookup evaluates a local JSON Pointer ("#/definitions/Foo") against
// the raw document tree.
func pointerLookup(root map[string]any, ref string) (any, bool) {
	after, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return nil, false
	}
	if after == "" {
		return root, true
	}
	if !strings.HasPrefix(after, "/") {
		return nil, false
	}
	cur := any(root)
	for _, seg := range strings.Split(after[1:], "/") {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		switch t := cur.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
