package output

import (
	"github.com/muesli/termenv"
)

// Role names a piece of rendered output that has its own style.
type Role int

const (
	RoleTime Role = iota
	RoleMessage
	RoleMessageInvalid
	RoleFieldKey
	RoleString
	RoleNumber
	RoleBool
	RoleNull
	RoleObjectDelim
	RoleArrayDelim
	RoleLevelEmpty
	RoleLevelDefault
)

// 16-color ANSI palette indexes.
const (
	black         = "0"
	red           = "1"
	white         = "7"
	brightBlack   = "8"
	brightRed     = "9"
	brightGreen   = "10"
	brightYellow  = "11"
	brightBlue    = "12"
	brightMagenta = "13"
	brightCyan    = "14"
	brightWhite   = "15"
)

// Style colors text without reflowing it. Tabs, line breaks and trailing
// whitespace pass through untouched.
type Style struct {
	profile termenv.Profile
	fg, bg  string
	bold    bool
}

// Render wraps text in the escape sequences for st.
func (st Style) Render(text string) string {
	out := st.profile.String(text)
	if st.fg != "" {
		out = out.Foreground(st.profile.Color(st.fg))
	}
	if st.bg != "" {
		out = out.Background(st.profile.Color(st.bg))
	}
	if st.bold {
		out = out.Bold()
	}
	return out.String()
}

// Styles is the color policy: one style per role plus one per level label.
type Styles struct {
	roles  map[Role]Style
	levels map[string]Style
}

// NewStyles builds the style table for the given color profile.
// termenv.Ascii yields plain text.
func NewStyles(profile termenv.Profile) *Styles {
	fg := func(c string) Style {
		return Style{profile: profile, fg: c}
	}
	badge := func(fg, bg string) Style {
		return Style{profile: profile, fg: fg, bg: bg, bold: true}
	}

	message := fg(white)
	message.bold = true
	invalid := fg(brightRed)
	invalid.bold = true

	return &Styles{
		roles: map[Role]Style{
			RoleTime:           fg(brightBlack),
			RoleMessage:        message,
			RoleMessageInvalid: invalid,
			RoleFieldKey:       fg(brightBlack),
			RoleString:         fg(brightBlue),
			RoleNumber:         fg(brightCyan),
			RoleBool:           fg(brightGreen),
			RoleNull:           fg(brightRed),
			RoleObjectDelim:    fg(brightYellow),
			RoleArrayDelim:     fg(brightMagenta),
			RoleLevelEmpty:     badge(brightBlack, brightYellow),
			RoleLevelDefault:   badge(brightWhite, brightBlack),
		},
		levels: map[string]Style{
			"PANIC": badge(red, brightWhite),
			"FATAL": badge(brightWhite, red),
			"ERROR": badge(brightWhite, brightRed),
			"WARN":  badge(brightBlack, brightYellow),
			"INFO":  badge(brightWhite, brightBlue),
			"DEBUG": badge(brightWhite, brightBlack),
			"TRACE": badge(brightWhite, black),
		},
	}
}

// Render applies the style for role to text.
func (s *Styles) Render(role Role, text string) string {
	return s.roles[role].Render(text)
}

// Level returns the badge style for a canonical label and whether the
// label has its own entry. Other labels get the default badge.
func (s *Styles) Level(label string) (Style, bool) {
	if st, ok := s.levels[label]; ok {
		return st, true
	}
	return s.roles[RoleLevelDefault], false
}
