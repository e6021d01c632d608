package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/peamaeq/makepad/live"
)

type Colorable struct {
	Type live.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range live.Types() {
		able := Colorable{Type: t, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = FieldColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}
	for _, t := range []live.Type{live.IntType, live.FloatType, live.Vec2Type, live.Vec3Type} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Type = live.BoolType
	colors.Map[able] = color.CyanString
	able.Type = live.ColorType
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Type = live.IdType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Type = live.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Type = live.UseType
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
	able.Type = live.FnType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able = Colorable{Type: live.ClassType, Attr: TagColor}
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t live.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t live.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
