// Package naming converts source identifiers to target member names.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Separator splits words in a snake_case identifier.
const Separator = "_"

// SnakeToCamel converts snake_case to camelCase. The first segment is kept as
// written; every later segment has its first rune upper-cased and the rest
// left unchanged. Leading separators are preserved so `_get_x` stays private
// looking as `_getX`.
//
//	get_names  -> getNames
//	is_present -> isPresent
//	foo        -> foo
func SnakeToCamel(name string) string {
	if !strings.Contains(name, Separator) {
		return name
	}

	trimmed := strings.TrimLeft(name, Separator)
	prefix := name[:len(name)-len(trimmed)]

	parts := strings.Split(trimmed, Separator)
	var sb strings.Builder
	sb.Grow(len(name))
	sb.WriteString(prefix)
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		sb.WriteString(upperFirst(p))
	}
	return sb.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
