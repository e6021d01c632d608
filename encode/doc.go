// Package encode renders live documents as text.
//
// The default live format prints each root on its own line:
//
//	Frame {
//	    walk:10
//	    button:Button {label:"Go"}
//	}
//
// A composite whose children are all scalars is printed on one line,
// otherwise each child gets its own line indented by depth. The output is
// for diagnostics only; nothing parses it back.
//
// The YAML and JSON formats render a structural dump of the node tree
// instead, see Tree.
package encode
