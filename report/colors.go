package report

import (
	"strings"

	"github.com/fatih/color"
)

// ColorAttr names one colorable element of a rendered report.
type ColorAttr int

const (
	AddedColor ColorAttr = iota
	RemovedColor
	ChangedColor
	HunkColor
	FileColor
	StatColor
	ErrorColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

// NewColors is the standard terminal palette.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[AddedColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[RemovedColor] = color.RGB(196, 32, 16).SprintfFunc()
	colors.Map[ChangedColor] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[HunkColor] = color.CyanString
	colors.Map[FileColor] = color.New(color.Bold).SprintfFunc()
	colors.Map[StatColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[ErrorColor] = color.RGB(168, 0, 196).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

// NoColors renders everything with the identity function.
func NoColors() *Colors {
	return &Colors{Default: colorDefault}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
