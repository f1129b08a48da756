package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"wither-generator/internal/common"
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/logger"
	"wither-generator/internal/naming"
	"wither-generator/internal/plan"
	"wither-generator/internal/synth"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Suffix replaces ".go" in the source file name to form the output name.
	Suffix string
	// OutputDir overrides the output directory; empty writes next to the
	// source file.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// ConstructorPrefix prefixes constructor names (NewUser).
	ConstructorPrefix string
	// WitherPrefix prefixes wither names (WithName).
	WitherPrefix string
	// ResultVar names the value built by constructors.
	ResultVar string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix:            "_with.go",
		GenerateComments:  true,
		ConstructorPrefix: "New",
		WitherPrefix:      "With",
		ResultVar:         "out",
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()

	if config.Suffix == "" {
		config.Suffix = def.Suffix
	}

	if config.ConstructorPrefix == "" {
		config.ConstructorPrefix = def.ConstructorPrefix
	}

	if config.WitherPrefix == "" {
		config.WitherPrefix = def.WitherPrefix
	}

	if config.ResultVar == "" {
		config.ResultVar = def.ResultVar
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "user_with.go").
	Filename string
	// Records are the declarations rendered into the file.
	Records []string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file's full path.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders every generated record of the plan, one file per source
// file. Records whose generated names collide with existing members are
// reported in p.Diagnostics and left out.
func (g *Generator) Generate(ctx context.Context, p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	log := logger.FromContext(ctx)

	keys, groups := p.ByFile()

	var files []GeneratedFile

	for _, key := range keys {
		data := &templateData{
			Header:   common.GeneratedHeader,
			Comments: g.config.GenerateComments,
		}

		for _, res := range groups[key] {
			rec, diags := g.buildRecord(res)
			p.Diagnostics.Merge(diags)

			if rec == nil {
				log.Warn("record not generated", "declaration", res.Declaration.String(), "errors", len(diags.Errors))
				continue
			}

			data.Records = append(data.Records, rec)
		}

		if len(data.Records) == 0 {
			continue
		}

		first := groups[key][0].Declaration
		data.PackageName = first.PkgName
		data.Filename = g.filename(first)
		data.Imports = collectImports(data.Records)

		file, err := g.generateFile(data, g.outputDir(first))
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", key, err)
		}

		log.Debug("file generated", "file", file.Path(), "records", len(file.Records))
		files = append(files, *file)
	}

	return files, nil
}

// Signatures returns the Go signatures of the members generated for res:
// the constructor contract (if any), the constructor, then the withers.
func (g *Generator) Signatures(res *synth.Result) []string {
	rec, _ := g.buildRecord(res)
	if rec == nil {
		return nil
	}

	var sigs []string

	if rec.Contract != "" {
		sigs = append(sigs, "type "+rec.Contract+rec.TypeParams+" func("+rec.ParamList+") "+rec.Result)
	}

	sigs = append(sigs, "func "+rec.Constructor+rec.TypeParams+"("+rec.ParamList+") "+rec.Result)

	for _, w := range rec.Withers {
		sigs = append(sigs,
			fmt.Sprintf("func (%s %s) %s(%s %s) %s", rec.Receiver, rec.Result, w.Name, w.Param, w.Type, rec.Result))
	}

	return sigs
}

// generateFile executes the template and formats the result.
func (g *Generator) generateFile(data *templateData, dir string) (*GeneratedFile, error) {
	if data.PackageName == "" {
		return nil, fmt.Errorf("%s: no package name", data.Filename)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := imports.Process(filepath.Join(dir, data.Filename), buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Best-effort: keep the unformatted code next to the output for debugging.
		_ = writeDebugUnformatted(dir, data.Filename, buf.Bytes())

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	names := make([]string, len(data.Records))
	for i, r := range data.Records {
		names[i] = r.Name
	}

	return &GeneratedFile{
		Dir:      dir,
		Filename: data.Filename,
		Records:  names,
		Content:  formatted,
	}, nil
}

// filename derives the output file name: "user.go" → "user_with.go" for
// source declarations, "UserProfile" → "user_profile_with.go" otherwise.
func (g *Generator) filename(d *decl.Declaration) string {
	if d.File != "" {
		return strings.TrimSuffix(filepath.Base(d.File), ".go") + g.config.Suffix
	}

	return naming.Snake(d.Name) + g.config.Suffix
}

func (g *Generator) outputDir(d *decl.Declaration) string {
	switch {
	case g.config.OutputDir != "":
		return g.config.OutputDir
	case d.Dir != "":
		return d.Dir
	default:
		return "."
	}
}

// templateData holds all data needed for the file template.
type templateData struct {
	Header      string
	PackageName string
	Filename    string
	Imports     []importSpec
	Comments    bool
	Records     []*recordData
}

// Template for the generated file.
var fileTemplate = template.Must(template.New("wither").Parse(`{{.Header}}

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}{{range $r := .Records}}{{if $r.Contract}}
{{if $.Comments}}// {{$r.Contract}} is the constructor contract of {{$r.Name}}.
{{end}}type {{$r.Contract}}{{$r.TypeParams}} func({{$r.ParamList}}) {{$r.Result}}
{{if $r.Assert}}
var _ {{$r.Contract}} = {{$r.Constructor}}
{{end}}{{end}}
{{if $.Comments}}// {{$r.Constructor}} returns a new {{$r.Name}} with every field set.
{{end}}func {{$r.Constructor}}{{$r.TypeParams}}({{$r.ParamList}}) {{$r.Result}} {
	{{$r.ResultVar}} := {{if $r.Pointer}}&{{end}}{{$r.Instance}}{}
{{range $r.Params}}	{{$r.ResultVar}}.{{.Field}} = {{.Name}}
{{end}}
	return {{$r.ResultVar}}
}
{{range $r.Withers}}
{{if $.Comments}}// {{.Name}} returns a new {{$r.Name}} equal to {{$r.Receiver}} except for {{.Field}}.
{{end}}func ({{$r.Receiver}} {{$r.Result}}) {{.Name}}({{.Param}} {{.Type}}) {{$r.Result}} {
	return {{$r.Call}}({{.Args}})
}
{{end}}{{end}}`))

// collisionDiagnostic reports a generated name that already exists.
func collisionDiagnostic(diags *diagnostic.Diagnostics, d *decl.Declaration, generated, existing string) {
	diags.AddError(diagnostic.CodeNameCollision,
		fmt.Sprintf("generated %s collides with existing %s", generated, existing),
		d.String(), "", "rename the member or change naming.constructor_prefix / naming.wither_prefix")
}
