// Package id provides the packed 64-bit identifiers used to key live
// document nodes.
//
// # Layout
//
// An Id is a tagged union distinguished by its top 3 bits:
//
//	0xx  Single   63-bit hash of identifier text
//	100  Empty    anonymous marker
//	101  NodePtr  file (16 bits) | level (13 bits) | index (32 bits)
//	110  Multi    count (29 bits) | index (32 bits) into a segment pool
//	111  Number   61-bit literal
//
// Two Ids are equal exactly when their words are equal, and no two variants
// can share a word.
//
// Callers that want to branch on the variant use Classify, which returns one
// of Single, Empty, Multi, Number or NodePtr. Encode is its inverse.
//
// # Interning
//
// FromText is pure: the same text yields the same Id in every process. The
// Registry records which text produced which Single Id so that diagnostics
// can print names and so that two texts hashing to the same Id are detected
// instead of silently merged. A Registry is an ordinary value owned by the
// caller; there is no package level registry.
package id
