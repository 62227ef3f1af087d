package propgen

import (
	"math/rand/v2"
)

// Generate produces one structurally valid document for the named resource
// type: lookup via the index, $ref resolution, then synthesis on the resolved
// root. Every failure from those stages propagates unwrapped; there is no
// partial output.
//
// Determinism is entirely a property of the supplied rng. Generate never
// reseeds or substitutes it, so a seeded source replayed from the same state
// yields identical documents. The rng must not be shared across concurrent
// calls without external synchronization; the index itself is safe to share.
func Generate(typeName string, idx *Index, rng *rand.Rand) (any, error) {
	return GenerateWith(typeName, idx, rng, ResolveOpt{}, SynthOpt{})
}

// GenerateWith is Generate with explicit resolution and synthesis options.
func GenerateWith(typeName string, idx *Index, rng *rand.Rand, ropt ResolveOpt, sopt SynthOpt) (any, error) {
	doc, err := idx.Lookup(typeName)
	if err != nil {
		return nil, err
	}
	root, err := ResolveWith(doc.Root, doc, ropt)
	if err != nil {
		return nil, err
	}
	return SynthesizeWith(root, rng, sopt)
}

// GenerateSeeded is Generate with a fresh rng seeded from the given value —
// the convenience entry point for reproducible scaffolding output.
func GenerateSeeded(typeName string, idx *Index, seed uint64) (any, error) {
	return Generate(typeName, idx, rand.New(rand.NewPCG(seed, 0)))
}
