package element

import "regexp"

var (
	hexColorRe   = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)
	rgbPrefixRe  = regexp.MustCompile(`^rgba?\(`)
	namedColorRe = regexp.MustCompile(`^[a-z]+$`)
)

// IsValidColor reports whether s passes the color syntax check: the tokens
// "transparent" and "none", #RRGGBB or #RGB hex, anything starting with
// "rgb(" or "rgba(" (case-sensitive, channels are not range-checked), or a
// lowercase word, which is taken as a color name without a table lookup.
func IsValidColor(s string) bool {
	switch {
	case s == "transparent" || s == "none":
		return true
	case hexColorRe.MatchString(s):
		return true
	case rgbPrefixRe.MatchString(s):
		return true
	case namedColorRe.MatchString(s):
		return true
	}
	return false
}

// IsNoPaint reports whether s disables a fill or stroke pass.
func IsNoPaint(s string) bool {
	return s == "" || s == "none" || s == "transparent"
}
