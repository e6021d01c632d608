package encode

import (
	"bytes"
	"strings"

	"github.com/peamaeq/makepad/live"
)

func MustString(doc *live.Document, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
