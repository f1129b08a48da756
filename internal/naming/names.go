package naming

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// initialisms are kept fully upper-case in exported names.
var initialisms = map[string]bool{
	"acl": true, "api": true, "ascii": true, "cpu": true, "css": true, "dns": true,
	"eof": true, "guid": true, "html": true, "http": true, "https": true, "id": true,
	"ip": true, "json": true, "lhs": true, "qps": true, "ram": true, "rhs": true,
	"rpc": true, "sla": true, "smtp": true, "sql": true, "ssh": true, "tcp": true,
	"tls": true, "ttl": true, "udp": true, "ui": true, "uid": true, "uri": true,
	"url": true, "utf8": true, "uuid": true, "vm": true, "xml": true, "xss": true,
}

// keywordAlternatives replaces Go keywords that cannot name a parameter.
var keywordAlternatives = map[string]string{
	"type":      "typ",
	"func":      "fn",
	"interface": "iface",
	"package":   "pkg",
	"range":     "rng",
	"default":   "def",
	"chan":      "ch",
	"map":       "m",
	"select":    "sel",
	"struct":    "st",
}

// Exported returns s with its leading token made upper-case
// ("name" → "Name", "userID" → "UserID", "url" → "URL").
func Exported(s string) string {
	first, rest := splitFirst(s)
	if first == "" {
		return ""
	}

	if initialisms[strings.ToLower(first)] {
		return strings.ToUpper(first) + rest
	}

	return cases.Title(language.Und, cases.NoLower).String(first) + rest
}

// Unexported returns s with its leading token made lower-case
// ("Name" → "name", "ID" → "id", "URLPath" → "urlPath").
func Unexported(s string) string {
	first, rest := splitFirst(s)
	if first == "" {
		return ""
	}

	return cases.Lower(language.Und).String(first) + rest
}

// IsExported reports whether s starts with an upper-case letter.
func IsExported(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.IsUpper(r)
}

// Prefixed joins a prefix and a name into a function or method name, e.g.
// ("New", "user", true) → "NewUser" and ("With", "name", false) → "withName".
func Prefixed(prefix, name string, exported bool) string {
	if prefix == "" {
		if exported {
			return Exported(name)
		}

		return Unexported(name)
	}

	if exported {
		return Exported(prefix) + Exported(name)
	}

	return Unexported(prefix) + Exported(name)
}

// LocalName returns a parameter or variable name for a field name. Keywords
// are replaced by a conventional abbreviation.
func LocalName(s string) string {
	name := Unexported(s)
	if name == "" {
		return "v"
	}

	if token.IsKeyword(name) {
		if alt, ok := keywordAlternatives[name]; ok {
			return alt
		}

		return name + "_"
	}

	return name
}

// ReceiverName returns the conventional one-letter receiver name for a type.
func ReceiverName(typeName string) string {
	first, _ := splitFirst(typeName)

	r, _ := utf8.DecodeRuneInString(first)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}

	return string(unicode.ToLower(r))
}

// Snake returns the snake_case form of an identifier ("UserProfile" →
// "user_profile").
func Snake(s string) string {
	return strings.Join(TokenizeIdent(s), "_")
}

// Unique returns name, or name with the smallest numeric suffix (starting at
// 2) that is not in taken. The returned name is added to taken.
func Unique(name string, taken map[string]bool) string {
	candidate := name
	for i := 2; taken[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}

	taken[candidate] = true

	return candidate
}
