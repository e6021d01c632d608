package token

import (
	"fmt"

	"github.com/peamaeq/makepad/id"
)

type TokenType int

const (
	TIdent TokenType = iota
	TNumber
	TString
	TPunct
	TOpen
	TClose
	TComment
	TWhitespace
	TUnknown
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TIdent:      "TIdent",
		TNumber:     "TNumber",
		TString:     "TString",
		TPunct:      "TPunct",
		TOpen:       "TOpen",
		TClose:      "TClose",
		TComment:    "TComment",
		TWhitespace: "TWhitespace",
		TUnknown:    "TUnknown",
	}[t]
}

// Token is one element of the stream a tokenizer hands to the compiler.
type Token struct {
	Type TokenType
	Text string
	Span Span
}

func (t *Token) String() string {
	return t.Text
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q %s", t.Type, t.Text, t.Span)
}

// TokenID addresses a token of a document's token pool.
type TokenID struct {
	File  id.FileID
	Index uint32
}

func (t TokenID) String() string {
	return fmt.Sprintf("token(%d:%d)", t.File, t.Index)
}
