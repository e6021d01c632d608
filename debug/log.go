package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"
)

// Doc renders a document with encode when printed.
type Doc struct{ *live.Document }

func (x Doc) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x.Document, buf); err != nil {
		return fmt.Sprintf("[raw *live.Document] %v", x.Document)
	}
	return buf.String()
}

var out io.Writer = os.Stderr

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
