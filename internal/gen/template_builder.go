package gen

import (
	"strings"

	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/naming"
	"wither-generator/internal/synth"
)

// recordData holds the rendering of one record.
type recordData struct {
	Name       string
	TypeParams string // "[K comparable, V any]" or empty
	// Instance is the instantiated type, e.g. "Page[T]".
	Instance string
	// Result is the constructor result and receiver type: Instance, or
	// *Instance for reference records.
	Result      string
	Pointer     bool
	Receiver    string
	Constructor string
	// Call is the constructor as called from withers, e.g. "NewPage[T]".
	Call      string
	Contract  string
	Assert    bool
	ResultVar string
	ParamList string
	Params    []paramData
	Withers   []witherData
	Imports   []decl.Import
	// Types are the parameter types, used to prune imports.
	Types []string
}

// paramData is one constructor parameter and the field it is assigned to.
type paramData struct {
	Name  string
	Type  string
	Field string
}

// witherData is one rendered wither.
type witherData struct {
	Name  string
	Field string
	Param string
	Type  string
	// Args are the constructor arguments, e.g. "u.ID, value, u.Age".
	Args string
}

// buildRecord renders the synthesized members of res. It returns nil with
// error diagnostics when a generated name collides with an existing one.
func (g *Generator) buildRecord(res *synth.Result) (*recordData, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	d := res.Declaration
	if res.Constructor == nil {
		return nil, diags
	}

	exported := res.Constructor.Access == decl.AccessPublic

	rec := &recordData{
		Name:        d.Name,
		TypeParams:  typeParamList(d.TypeParams),
		Instance:    d.Name + typeArgList(d.TypeParams),
		Pointer:     d.Kind == decl.KindReference,
		Receiver:    naming.ReceiverName(d.Name),
		Constructor: naming.Prefixed(g.config.ConstructorPrefix, d.Name, exported),
		ResultVar:   g.config.ResultVar,
		Imports:     d.Imports,
	}

	rec.Result = rec.Instance
	if rec.Pointer {
		rec.Result = "*" + rec.Instance
	}

	rec.Call = rec.Constructor + typeArgList(d.TypeParams)

	if res.Constructor.Required {
		rec.Contract = d.Name + "Constructor"
		rec.Assert = len(d.TypeParams) == 0
	}

	// Parameter names must not shadow what the constructor body refers to.
	taken := map[string]bool{rec.ResultVar: true, d.Name: true}
	for _, tp := range d.TypeParams {
		taken[tp.Name] = true
	}

	params := make([]string, 0, res.Constructor.Arity())
	paramOf := make(map[string]string, res.Constructor.Arity())

	for i, p := range res.Constructor.Params {
		name := naming.Unique(naming.LocalName(p.Name), taken)
		paramOf[p.Name] = name

		rec.Params = append(rec.Params, paramData{Name: name, Type: p.Type, Field: res.Constructor.Body[i].Field})
		rec.Types = append(rec.Types, p.Type)
		params = append(params, name+" "+p.Type)
	}

	rec.ParamList = strings.Join(params, ", ")

	for _, w := range res.Withers {
		args := make([]string, len(w.Args))
		for i, a := range w.Args {
			if a.FromReceiver {
				args[i] = rec.Receiver + "." + a.Value
			} else {
				args[i] = a.Value
			}
		}

		rec.Withers = append(rec.Withers, witherData{
			Name:  naming.Prefixed(g.config.WitherPrefix, w.Name, exported),
			Field: w.Field.Name,
			Param: w.Param.Name,
			Type:  w.Param.Type,
			Args:  strings.Join(args, ", "),
		})
	}

	checkCollisions(&diags, d, rec)
	if diags.HasErrors() {
		return nil, diags
	}

	return rec, diags
}

// checkCollisions reports generated names that already exist: withers
// against the record's fields and methods, package-level names against the
// package scope.
func checkCollisions(diags *diagnostic.Diagnostics, d *decl.Declaration, rec *recordData) {
	members := make(map[string]string)
	for _, name := range d.MemberNames(decl.MemberField) {
		members[name] = "field"
	}

	for _, name := range d.MemberNames(decl.MemberMethod) {
		members[name] = "method"
	}

	generated := make(map[string]string, len(rec.Withers))

	for _, w := range rec.Withers {
		if kind, ok := members[w.Name]; ok {
			collisionDiagnostic(diags, d, "wither "+w.Name, kind+" "+d.Name+"."+w.Name)
		}

		// Fields differing only in the case of the first letter share a wither name.
		if field, ok := generated[w.Name]; ok {
			collisionDiagnostic(diags, d, "wither "+w.Name+" for "+w.Field, "wither "+w.Name+" for "+field)
			continue
		}

		generated[w.Name] = w.Field
	}

	reserved := make(map[string]bool, len(d.Reserved))
	for _, name := range d.Reserved {
		reserved[name] = true
	}

	if reserved[rec.Constructor] {
		collisionDiagnostic(diags, d, "constructor "+rec.Constructor, "package-level "+rec.Constructor)
	}

	if rec.Contract != "" && reserved[rec.Contract] {
		collisionDiagnostic(diags, d, "type "+rec.Contract, "package-level "+rec.Contract)
	}
}
