// Package build produces and patches live documents from YAML.
//
// Load turns a YAML mapping into a document. Keys become ids, nested
// mappings become classes and tags select the other value kinds:
//
//	Frame:
//	  walk: 10
//	  button: !Button
//	    label: Go
//	  size: !vec2 [100, 20]
//	  tint: !color "#ff8000"
//	  theme: !id theme::dark
//	  pad: !Pad [4, 8]
//	  style: !obj {bold: true}
//	widgets: !use crate::widgets
//	on_click: !fn "widgets + walk"
//
// Patch applies a YAML overlay to an existing document, one statement per
// leaf, the way a hot reload recompiles changed source into the previous
// generation. ApplyJSONPatch does the same for RFC 6902 add and replace
// operations.
package build
