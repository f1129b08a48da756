package analyze

import (
	"fmt"
	"go/ast"
	"strings"
)

// Directive marks a type for generation when placed in its doc comment:
//
//	//wither:generate
//	type User struct { ... }
//
// Optional arguments: "ref" (reference record with pointer receivers and a
// constructor contract), "final" (no constructor contract) and "value".
const Directive = "wither:generate"

// directive is a parsed Directive comment.
type directive struct {
	present bool
	ref     bool
	final   bool
}

// parseDirective scans comment groups for Directive.
func parseDirective(groups ...*ast.CommentGroup) (directive, error) {
	var d directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			text := strings.TrimPrefix(c.Text, "//")

			rest, ok := strings.CutPrefix(text, Directive)
			if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
				continue
			}

			d.present = true

			for _, arg := range strings.Fields(rest) {
				switch arg {
				case "ref", "reference", "pointer":
					d.ref = true
				case "final":
					d.final = true
				case "value":
					d.ref = false
				default:
					return d, fmt.Errorf("unknown %s argument %q", Directive, arg)
				}
			}
		}
	}

	return d, nil
}
