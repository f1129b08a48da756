package common

import "strings"

// PkgNameGuess returns the likely package name for an import path when no
// type information is available: the last path element with any major
// version suffix or ".vN" / "go-" decorations removed.
func PkgNameGuess(pkgPath string) string {
	elems := strings.Split(strings.TrimSuffix(pkgPath, "/"), "/")

	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}

	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}

	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")

	return strings.ReplaceAll(name, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
