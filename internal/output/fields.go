package output

import (
	"strconv"
	"strings"

	"github.com/atikulmunna/prettylog/internal/model"
)

// maxRenderDepth stops recursion on values not built by parser.Parse.
const maxRenderDepth = 512

// renderFields renders every member of obj whose key is not excluded as
// space-separated key=value pairs, in object order.
func (s *Styles) renderFields(obj model.Value, exclude map[string]bool) string {
	parts := make([]string, 0, len(obj.Members))
	for _, m := range obj.Members {
		if exclude[m.Key] {
			continue
		}
		parts = append(parts, s.Render(RoleFieldKey, m.Key)+"="+s.renderValue(m.Value, 0))
	}
	return strings.Join(parts, " ")
}

func (s *Styles) renderValue(v model.Value, depth int) string {
	if depth >= maxRenderDepth {
		return s.Render(RoleNull, "...")
	}

	switch v.Kind {
	case model.String:
		return s.Render(RoleString, strconv.Quote(v.Str))
	case model.Number:
		return s.Render(RoleNumber, v.Number.String())
	case model.Bool:
		return s.Render(RoleBool, strconv.FormatBool(v.Bool))
	case model.Object:
		parts := make([]string, 0, len(v.Members))
		for _, m := range v.Members {
			parts = append(parts, s.Render(RoleFieldKey, m.Key)+s.Render(RoleObjectDelim, ":")+s.renderValue(m.Value, depth+1))
		}
		return s.Render(RoleObjectDelim, "{") +
			strings.Join(parts, s.Render(RoleObjectDelim, ", ")) +
			s.Render(RoleObjectDelim, "}")
	case model.Array:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, s.renderValue(item, depth+1))
		}
		return s.Render(RoleArrayDelim, "[") +
			strings.Join(parts, s.Render(RoleArrayDelim, ", ")) +
			s.Render(RoleArrayDelim, "]")
	default:
		return s.Render(RoleNull, "null")
	}
}
