package propgen

import (
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/simonrw/cfn-propgen/schema"
)

// SynthOpt bundles synthesis options.
type SynthOpt struct {
	// IncludeOptional adds every optional object property, not just the
	// required set. Optional names are visited in sorted order so a seeded
	// rng still yields reproducible output.
	IncludeOptional bool
}

const maxArrayLen = 3

// alphabet for generated strings: printable, shell-safe.
const strAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Synthesize produces one random value for a resolved schema node, honoring
// structural constraints only. Length, range, pattern and format bounds
// recorded on the node are intentionally ignored; the output is a skeleton,
// not a semantically valid document.
//
// The node must come from Resolve: a $ref or allOf reaching this layer is a
// resolution bug, not an input condition, and synthesis does not handle it.
func Synthesize(n *schema.Node, rng *rand.Rand) (any, error) {
	return SynthesizeWith(n, rng, SynthOpt{})
}

// SynthesizeWith is Synthesize with explicit options.
func SynthesizeWith(n *schema.Node, rng *rand.Rand, opt SynthOpt) (any, error) {
	return synthesize(n, rng, opt, "")
}

func synthesize(n *schema.Node, rng *rand.Rand, opt SynthOpt, path string) (any, error) {
	if n == nil {
		return nil, schemaErrf(CodeUnderspecifiedSchema, path, "nil schema node")
	}

	// Literal keywords win over kind-based synthesis.
	if n.HasConst {
		return n.Const, nil
	}
	if len(n.Enum) > 0 {
		return n.Enum[rng.IntN(len(n.Enum))], nil
	}
	if len(n.OneOf) > 0 {
		i := rng.IntN(len(n.OneOf))
		return synthesize(n.OneOf[i], rng, opt, path+"/oneOf/"+strconv.Itoa(i))
	}

	switch n.Kind {
	case schema.KindString:
		return synthString(rng), nil
	case schema.KindInteger:
		return int64(rng.IntN(100000)), nil
	case schema.KindNumber:
		return rng.Float64() * 1000, nil
	case schema.KindBoolean:
		return rng.IntN(2) == 0, nil
	case schema.KindArray:
		return synthArray(n, rng, opt, path)
	case schema.KindObject:
		return synthObject(n, rng, opt, path)
	case "":
		// No usable kind and nothing literal to fall back on. Defaulting
		// here would mask malformed input schemas, so refuse instead.
		return nil, schemaErrf(CodeUnderspecifiedSchema, path, "node has no type, enum, const or alternatives")
	default:
		return nil, schemaErrf(CodeUnderspecifiedSchema, path, "unrecognized type %q", n.Kind)
	}
}

func synthString(rng *rand.Rand) string {
	b := make([]byte, 1+rng.IntN(12))
	for i := range b {
		b[i] = strAlphabet[rng.IntN(len(strAlphabet))]
	}
	return string(b)
}

func synthArray(n *schema.Node, rng *rand.Rand, opt SynthOpt, path string) (any, error) {
	// Tuple form: one element per member schema, fixed length.
	if len(n.TupleItems) > 0 {
		out := make([]any, 0, len(n.TupleItems))
		for i, ti := range n.TupleItems {
			v, err := synthesize(ti, rng, opt, path+"/items/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	// No element schema means nothing can be drawn for the elements; the
	// only structurally valid sequence is the empty one.
	if n.Items == nil {
		return []any{}, nil
	}
	out := make([]any, rng.IntN(maxArrayLen+1))
	for i := range out {
		v, err := synthesize(n.Items, rng, opt, path+"/items")
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func synthObject(n *schema.Node, rng *rand.Rand, opt SynthOpt, path string) (any, error) {
	out := make(map[string]any, len(n.Required))
	for _, name := range n.Required {
		child, ok := n.Properties[name]
		if !ok {
			return nil, schemaErrf(CodeMissingPropertyDefinition, path, "required property %q has no definition", name)
		}
		v, err := synthesize(child, rng, opt, path+"/properties/"+name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	if opt.IncludeOptional {
		optional := make([]string, 0, len(n.Properties))
		for name := range n.Properties {
			if _, done := out[name]; !done {
				optional = append(optional, name)
			}
		}
		sort.Strings(optional)
		for _, name := range optional {
			v, err := synthesize(n.Properties[name], rng, opt, path+"/properties/"+name)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
	}
	return out, nil
}
