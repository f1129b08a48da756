package analyze

import (
	"fmt"
	"go/ast"
	"reflect"
	"strconv"
	"strings"
)

// TagKey is the struct tag key read by the analyzer:
//
//	Name    string `wither:"readonly"`
//	cache   []byte `wither:"-"`
//	retries int    `wither:"public,default=3"`
//
// Options:
//   - "-" or "computed": derived field, excluded from all generated code
//   - "private" / "public": visibility override
//   - "readonly": immutable field
//   - "default=<expr>": initial value; must be the last option
const TagKey = "wither"

// fieldTag holds the parsed TagKey options of one struct field.
type fieldTag struct {
	computed    bool
	private     bool
	public      bool
	readonly    bool
	defaultExpr string
}

// parseFieldTag parses the TagKey options from a raw struct tag literal.
func parseFieldTag(lit *ast.BasicLit) (fieldTag, error) {
	var ft fieldTag

	if lit == nil {
		return ft, nil
	}

	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ft, fmt.Errorf("invalid struct tag %s: %w", lit.Value, err)
	}

	value, ok := reflect.StructTag(raw).Lookup(TagKey)
	if !ok {
		return ft, nil
	}

	for value != "" {
		var opt string

		if strings.HasPrefix(value, "default=") {
			opt, value = value, ""
		} else {
			opt, value, _ = strings.Cut(value, ",")
		}

		opt = strings.TrimSpace(opt)

		switch {
		case opt == "-" || opt == "computed":
			ft.computed = true
		case opt == "private":
			ft.private = true
		case opt == "public":
			ft.public = true
		case opt == "readonly":
			ft.readonly = true
		case strings.HasPrefix(opt, "default="):
			ft.defaultExpr = strings.TrimPrefix(opt, "default=")
		case opt == "":
		default:
			return ft, fmt.Errorf("unknown %s tag option %q", TagKey, opt)
		}
	}

	if ft.private && ft.public {
		return ft, fmt.Errorf("%s tag cannot be both private and public", TagKey)
	}

	return ft, nil
}
