// Package token provides source locations and token records for live
// documents.
//
// [Span] packs a file index and a start/end offset pair into one word.
// [Token] is what a tokenizer hands to the document builder, and [Source]
// maps offsets back to lines and columns for diagnostics.
package token
