// Package live provides the Live Document: the in-memory, incrementally
// patchable form of one compiled unit of the live description language.
//
// # Levels
//
// A Document stores its tree as one flat slice of nodes per depth. Level 0
// holds the roots. A composite node (Class, Object, Array, Call) does not
// point at its children; instead it records a (Start, Count) run in the next
// level:
//
//	Nodes[0]:  Frame{Start: 0, Count: 2}
//	Nodes[1]:  walk:10  button:Button{Start: 0, Count: 1}
//	Nodes[2]:  label:"Go"
//
// A document built top-down in source order keeps every run contiguous and
// disjoint without any bookkeeping.
//
// # Paths
//
// Scan and Resolve walk a path of ids from the roots, descending only through
// Class nodes. WriteOrAddNode is the read-modify-write counterpart used when
// a changed source is compiled into an existing document. Adding a child to
// a run that is not the last one of its level moves the whole run to the end
// of the level; the vacated slots are not reused until Compact or
// RestartFrom.
//
// # Pools
//
// Multi ids, string values, tokens and function scopes live in flat pools on
// the document. Pool indices are append-only and stay valid until the
// document is restarted.
package live
