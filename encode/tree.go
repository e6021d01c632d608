package encode

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

// TreeNode is the structural dump of one node.
type TreeNode struct {
	ID       string      `json:"id,omitempty" yaml:"id,omitempty"`
	Type     live.Type   `json:"type" yaml:"type"`
	Class    string      `json:"class,omitempty" yaml:"class,omitempty"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree dumps every root of doc.
func Tree(doc *live.Document) []*TreeNode {
	roots := doc.Roots()
	res := make([]*TreeNode, 0, len(roots))
	for i := range roots {
		res = append(res, treeNode(doc, id.Ptr{Level: 0, Index: i}))
	}
	return res
}

func treeNode(doc *live.Document, ptr id.Ptr) *TreeNode {
	n, _ := doc.Node(ptr)
	v := n.Value
	res := &TreeNode{Type: v.Type}
	if !n.ID.IsEmpty() {
		res.ID = doc.PathString(n.ID)
	}
	switch v.Type {
	case live.ClassType, live.CallType:
		res.Class = doc.ColonString(v.ID)
	case live.ObjectType, live.ArrayType:
	default:
		res.Value = Scalar(doc, v)
		return res
	}
	start, _ := v.Children()
	for i := range doc.Children(ptr) {
		res.Children = append(res.Children, treeNode(doc, id.Ptr{Level: ptr.Level + 1, Index: start + i}))
	}
	return res
}

func encodeTree(tree []*TreeNode, w io.Writer, es *EncState) error {
	var (
		d   []byte
		err error
	)
	if es.format.IsJSON() {
		d, err = json.MarshalIndent(tree, "", strings.Repeat(" ", es.indent))
		d = append(d, '\n')
	} else {
		d, err = yaml.MarshalWithOptions(tree, yaml.Indent(es.indent))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
