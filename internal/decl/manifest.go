package decl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the root of a YAML declaration manifest.
//
//	version: "1"
//	package: models
//	dir: ./models
//	imports:
//	  - path: time
//	declarations:
//	  - name: User
//	    kind: value
//	    modifiers: [public]
//	    members:
//	      - name: name
//	        type: string
//	        mutable: true
//	        modifiers: [public]
//	      - name: age
//	        type: int
//	        modifiers: [private]
//	      - name: display
//	        type: string
//	        computed: true
type ManifestFile struct {
	Version      string                `yaml:"version,omitempty"`
	Package      string                `yaml:"package,omitempty"`
	PackagePath  string                `yaml:"package_path,omitempty"`
	Dir          string                `yaml:"dir,omitempty"`
	Imports      []Import              `yaml:"imports,omitempty"`
	Declarations []ManifestDeclaration `yaml:"declarations"`
}

// ManifestDeclaration describes one declaration in a manifest.
type ManifestDeclaration struct {
	Name       string           `yaml:"name"`
	Kind       string           `yaml:"kind,omitempty"`
	Modifiers  []Modifier       `yaml:"modifiers,omitempty"`
	TypeParams []TypeParam      `yaml:"type_params,omitempty"`
	Members    []ManifestMember `yaml:"members,omitempty"`
}

// ManifestMember describes one member in a manifest declaration.
type ManifestMember struct {
	Name      string     `yaml:"name,omitempty"`
	Type      string     `yaml:"type,omitempty"`
	Kind      string     `yaml:"kind,omitempty"`
	Mutable   bool       `yaml:"mutable,omitempty"`
	Modifiers []Modifier `yaml:"modifiers,omitempty"`
	Default   string     `yaml:"default,omitempty"`
	Computed  bool       `yaml:"computed,omitempty"`
}

// LoadManifest loads a manifest file and converts it into declarations.
// A relative manifest dir is resolved against the manifest's own directory.
func LoadManifest(path string) ([]*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	mf, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf.ToDeclarations(filepath.Dir(path))
}

// ParseManifest parses YAML data into a ManifestFile.
func ParseManifest(data []byte) (*ManifestFile, error) {
	var mf ManifestFile

	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyManifestDefaults(&mf)

	return &mf, nil
}

// applyManifestDefaults fills in default values for optional fields.
func applyManifestDefaults(mf *ManifestFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	if mf.PackagePath == "" {
		mf.PackagePath = mf.Package
	}

	for i := range mf.Declarations {
		if mf.Declarations[i].Kind == "" {
			mf.Declarations[i].Kind = KindValue.String()
		}
	}
}

// ToDeclarations converts the manifest into declarations, in manifest order.
// baseDir anchors a relative Dir.
func (mf *ManifestFile) ToDeclarations(baseDir string) ([]*Declaration, error) {
	dir := mf.Dir
	if dir == "" {
		dir = baseDir
	} else if !filepath.IsAbs(dir) && baseDir != "" {
		dir = filepath.Join(baseDir, dir)
	}

	var (
		decls []*Declaration
		errs  []error
	)

	for i := range mf.Declarations {
		md := &mf.Declarations[i]

		d, err := md.declaration()
		if err != nil {
			errs = append(errs, fmt.Errorf("declaration %d (%s): %w", i, md.Name, err))
			continue
		}

		d.PkgName = mf.Package
		d.PkgPath = mf.PackagePath
		d.Dir = dir
		d.Imports = append([]Import(nil), mf.Imports...)

		decls = append(decls, d)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return decls, nil
}

func (md *ManifestDeclaration) declaration() (*Declaration, error) {
	if md.Name == "" {
		return nil, errors.New("name is required")
	}

	kind, err := ParseKind(md.Kind)
	if err != nil {
		return nil, err
	}

	d := &Declaration{
		Name:       md.Name,
		Kind:       kind,
		Modifiers:  append([]Modifier(nil), md.Modifiers...),
		TypeParams: append([]TypeParam(nil), md.TypeParams...),
		Members:    make([]Member, 0, len(md.Members)),
	}

	for j := range md.Members {
		mm := &md.Members[j]

		mk, err := ParseMemberKind(mm.Kind)
		if err != nil {
			return nil, fmt.Errorf("member %d: %w", j, err)
		}

		d.Members = append(d.Members, Member{
			Kind:        mk,
			Name:        mm.Name,
			Type:        mm.Type,
			Mutable:     mm.Mutable,
			Modifiers:   append([]Modifier(nil), mm.Modifiers...),
			Initializer: mm.Default,
			HasAccessor: mm.Computed,
		})
	}

	return d, nil
}
