package tmpl

import (
	"strconv"
	"strings"
)

// Vars holds the values substituted into export path patterns.
type Vars struct {
	Density string // Android density qualifier, e.g. "xhdpi"
	Size    int    // edge length in pixels
	Scale   int    // iOS scale factor (1, 2, 3)
}

// Expand replaces placeholders in s with values from v.
// {density} → qualifier as-is, {Density} → title-cased,
// {size} → pixel size, {scale} → scale factor.
// Placeholders whose value is unset expand to the empty string;
// unknown placeholders are left untouched.
func Expand(s string, v Vars) string {
	size, scale := "", ""
	if v.Size > 0 {
		size = strconv.Itoa(v.Size)
	}
	if v.Scale > 0 {
		scale = strconv.Itoa(v.Scale)
	}
	r := strings.NewReplacer(
		"{Density}", TitleCase(v.Density),
		"{density}", v.Density,
		"{size}", size,
		"{scale}", scale,
	)
	return r.Replace(s)
}

// TitleCase uppercases the first byte of s.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
