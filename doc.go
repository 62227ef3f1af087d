package propgen

// Package propgen generates structurally valid skeleton documents for
// CloudFormation resource types from their provider schemas:
//
// - An Index maps resource type names to immutable schema documents (LoadIndex/Lookup)
// - Resolve dereferences local $ref pointers, merges allOf, and breaks cycles
// - Synthesize turns a resolved node into a random value honoring structural constraints
// - Generate composes the three for one resource type
//
// Design policy:
// - Keep only public APIs in the root package; the schema model lives in schema/,
//   acquisition glue under internal/, and the CLI under cmd/cfn-propgen.
// - Structural constraints only: required sets, kinds, enum membership and
//   composition shape are honored; length/range/pattern bounds are recorded
//   on the model but deliberately never enforced.
// - Randomness is always an injected *rand.Rand; the library never touches
//   ambient random state, so a seeded source makes output reproducible.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	idx, err := propgen.LoadIndex(merged)
//	doc, err := propgen.GenerateSeeded("AWS::SNS::Topic", idx, 42)
