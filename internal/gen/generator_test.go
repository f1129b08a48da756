package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wither-generator/internal/analyze"
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/logger"
	"wither-generator/internal/plan"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logger.ContextWithLogger(t.Context(), logger.NewLogger(logger.TestConfig()))
}

func resolve(t *testing.T, decls []*decl.Declaration) *plan.ResolvedPlan {
	t.Helper()

	p, err := plan.NewResolver(decls, plan.DefaultConfig()).Resolve(testContext(t))
	require.NoError(t, err)

	return p
}

func generateSource(t *testing.T, src string, opts analyze.Options, cfg GeneratorConfig) ([]GeneratedFile, *plan.ResolvedPlan) {
	t.Helper()

	decls, err := analyze.ParseSource("user.go", src, opts)
	require.NoError(t, err)

	p := resolve(t, decls)

	files, err := NewGenerator(cfg).Generate(testContext(t), p)
	require.NoError(t, err)

	return files, p
}

func generateOne(t *testing.T, src string, opts analyze.Options) string {
	t.Helper()

	files, p := generateSource(t, src, opts, DefaultGeneratorConfig())
	require.True(t, p.Diagnostics.IsValid(), "diagnostics: %v", p.Diagnostics.All())
	require.Len(t, files, 1)

	return string(files[0].Content)
}

const userSource = `package models

//wither:generate
type User struct {
	Name string
	age  int
}
`

func TestGenerate_ValueRecord(t *testing.T) {
	want := `// Code generated by wither-generator. DO NOT EDIT.

package models

// NewUser returns a new User with every field set.
func NewUser(name string, age int) User {
	out := User{}
	out.Name = name
	out.age = age

	return out
}

// WithName returns a new User equal to u except for Name.
func (u User) WithName(value string) User {
	return NewUser(value, u.age)
}
`

	files, p := generateSource(t, userSource, analyze.Options{UnexportedPrivate: true}, DefaultGeneratorConfig())
	require.True(t, p.Diagnostics.IsValid())
	require.Len(t, files, 1)

	assert.Equal(t, "user_with.go", files[0].Filename)
	assert.Equal(t, ".", files[0].Dir)
	assert.Equal(t, []string{"User"}, files[0].Records)
	assert.Equal(t, want, string(files[0].Content))
}

func TestGenerate_PrivateFieldAddsParameterOnly(t *testing.T) {
	src := `package models

//wither:generate
type User struct {
	Name string
	age  int
	sex  bool
}
`

	out := generateOne(t, src, analyze.Options{UnexportedPrivate: true})

	assert.Contains(t, out, "func NewUser(name string, age int, sex bool) User {")
	assert.Contains(t, out, "\tout.sex = sex\n")
	assert.Contains(t, out, "return NewUser(value, u.age, u.sex)")
	assert.Equal(t, 1, strings.Count(out, "func (u User)"))
}

func TestGenerate_ComputedFieldExcluded(t *testing.T) {
	src := "package models\n\n//wither:generate\ntype User struct {\n\tName string\n\tcache map[string]int `wither:\"-\"`\n}\n"

	out := generateOne(t, src, analyze.Options{})

	assert.NotContains(t, out, "cache")
	assert.Contains(t, out, "func NewUser(name string) User {")
	assert.Contains(t, out, "return NewUser(value)")
}

func TestGenerate_ReferenceRecord(t *testing.T) {
	src := `package models

//wither:generate ref
type Account struct {
	Owner   string
	Balance int64
}
`

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "type AccountConstructor func(owner string, balance int64) *Account\n")
	assert.Contains(t, out, "var _ AccountConstructor = NewAccount\n")
	assert.Contains(t, out, "func NewAccount(owner string, balance int64) *Account {")
	assert.Contains(t, out, "\tout := &Account{}\n")
	assert.Contains(t, out, "func (a *Account) WithOwner(value string) *Account {")
	assert.Contains(t, out, "return NewAccount(value, a.Balance)")
	assert.Contains(t, out, "func (a *Account) WithBalance(value int64) *Account {")
	assert.Contains(t, out, "return NewAccount(a.Owner, value)")
}

func TestGenerate_FinalReferenceHasNoContract(t *testing.T) {
	src := "package models\n\n//wither:generate ref final\ntype Account struct {\n\tOwner string\n}\n"

	out := generateOne(t, src, analyze.Options{})

	assert.NotContains(t, out, "AccountConstructor")
	assert.Contains(t, out, "func NewAccount(owner string) *Account {")
}

func TestGenerate_GenericRecords(t *testing.T) {
	src := `package models

//wither:generate
type Page[T any] struct {
	Items  []T
	Cursor string
}

//wither:generate ref
type Box[K comparable, V any] struct {
	Key   K
	Value V
}
`

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "func NewPage[T any](items []T, cursor string) Page[T] {")
	assert.Contains(t, out, "\tout := Page[T]{}\n")
	assert.Contains(t, out, "func (p Page[T]) WithCursor(value string) Page[T] {")
	assert.Contains(t, out, "return NewPage[T](p.Items, value)")

	assert.Contains(t, out, "type BoxConstructor[K comparable, V any] func(key K, value V) *Box[K, V]\n")
	assert.NotContains(t, out, "var _ BoxConstructor")
	assert.Contains(t, out, "func (b *Box[K, V]) WithValue(value V) *Box[K, V] {")
	assert.Contains(t, out, "return NewBox[K, V](b.Key, value)")
}

func TestGenerate_UnexportedRecord(t *testing.T) {
	src := "package models\n\n//wither:generate\ntype item struct {\n\tname string\n}\n"

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "func newItem(name string) item {")
	assert.Contains(t, out, "func (i item) withName(value string) item {")
}

func TestGenerate_ParameterNames(t *testing.T) {
	src := `package models

//wither:generate
type Token struct {
	Out  int
	Type string
	ID   string
}
`

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "func NewToken(out2 int, typ string, id string) Token {")
	assert.Contains(t, out, "\tout.Out = out2\n")
	assert.Contains(t, out, "\tout.Type = typ\n")
	assert.Contains(t, out, "func (t Token) WithID(value string) Token {")
}

func TestGenerate_ImportsFollowParameterTypes(t *testing.T) {
	src := `package models

import (
	"sync"
	"time"
)

//wither:generate
type Event struct {
	mu sync.Mutex `+"`wither:\"-\"`"+`
	At time.Time
}
`

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "\"time\"")
	assert.NotContains(t, out, "\"sync\"")
	assert.Contains(t, out, "func NewEvent(at time.Time) Event {")
}

func TestGenerate_EmbeddedFieldsKeptByWithers(t *testing.T) {
	src := `package models

//wither:generate
type User struct {
	Base
	*Audit
	Name string
}

type Base struct{ ID int }

type Audit struct{ By string }
`

	out := generateOne(t, src, analyze.Options{})

	assert.Contains(t, out, "func NewUser(base Base, audit *Audit, name string) User {")
	assert.Contains(t, out, "\tout.Base = base\n")
	assert.Contains(t, out, "\tout.Audit = audit\n")
	assert.Contains(t, out, "func (u User) WithName(value string) User {\n\treturn NewUser(u.Base, u.Audit, value)\n}")
	assert.Contains(t, out, "func (u User) WithBase(value Base) User {\n\treturn NewUser(value, u.Audit, u.Name)\n}")
	assert.Contains(t, out, "func (u User) WithAudit(value *Audit) User {")
}

func TestGenerate_Collisions(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "field",
			src:  "package models\n\n//wither:generate\ntype User struct {\n\tName     string\n\tWithName bool\n}\n",
		},
		{
			name: "method",
			src:  "package models\n\n//wither:generate\ntype User struct {\n\tName string\n}\n\nfunc (u User) WithName(s string) User { return u }\n",
		},
		{
			name: "two withers",
			src:  "package models\n\n//wither:generate\ntype User struct {\n\tName string\n\tname string `wither:\"public\"`\n}\n",
		},
		{
			name: "package-level constructor",
			src:  "package models\n\n//wither:generate\ntype User struct {\n\tName string\n}\n\nfunc NewUser() User { return User{} }\n",
		},
		{
			name: "package-level contract",
			src:  "package models\n\n//wither:generate ref\ntype User struct {\n\tName string\n}\n\ntype UserConstructor int\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, p := generateSource(t, tt.src, analyze.Options{}, DefaultGeneratorConfig())

			assert.Empty(t, files)
			require.Len(t, p.Diagnostics.Errors, 1)
			assert.Equal(t, diagnostic.CodeNameCollision, p.Diagnostics.Errors[0].Code)
			assert.Equal(t, "models.User", p.Diagnostics.Errors[0].Declaration)
		})
	}
}

func TestGenerate_CollisionKeepsOtherRecords(t *testing.T) {
	src := `package models

//wither:generate
type User struct {
	Name     string
	WithName bool
}

//wither:generate
type Team struct {
	Name string
}
`

	files, p := generateSource(t, src, analyze.Options{}, DefaultGeneratorConfig())

	require.Len(t, files, 1)
	assert.Equal(t, []string{"Team"}, files[0].Records)
	assert.False(t, p.Diagnostics.IsValid())
}

func TestGenerate_Config(t *testing.T) {
	cfg := GeneratorConfig{
		Suffix:            "_gen.go",
		OutputDir:         "generated",
		ConstructorPrefix: "Make",
		WitherPrefix:      "Set",
		ResultVar:         "r",
	}

	files, _ := generateSource(t, userSource, analyze.Options{}, cfg)
	require.Len(t, files, 1)

	out := string(files[0].Content)
	assert.Equal(t, "user_gen.go", files[0].Filename)
	assert.Equal(t, filepath.Join("generated", "user_gen.go"), files[0].Path())
	assert.Contains(t, out, "func MakeUser(name string, age int) User {")
	assert.Contains(t, out, "\tr := User{}\n")
	assert.Contains(t, out, "\treturn r\n")
	assert.Contains(t, out, "func (u User) SetName(value string) User {")
	assert.Contains(t, out, "func (u User) SetAge(value int) User {")
	assert.NotContains(t, out, "// MakeUser")
}

func TestGenerate_ManifestDeclaration(t *testing.T) {
	d := &decl.Declaration{
		Name:      "UserProfile",
		Kind:      decl.KindValue,
		Modifiers: []decl.Modifier{decl.ModPublic},
		PkgName:   "profiles",
		Dir:       "out",
		Members: []decl.Member{
			{Kind: decl.MemberField, Name: "name", Type: "String", Mutable: true, Modifiers: []decl.Modifier{decl.ModPublic}},
			{Kind: decl.MemberField, Name: "age", Type: "Int", Modifiers: []decl.Modifier{decl.ModPrivate}},
		},
	}

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(testContext(t), resolve(t, []*decl.Declaration{d}))
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, filepath.Join("out", "user_profile_with.go"), files[0].Path())

	out := string(files[0].Content)
	assert.Contains(t, out, "package profiles\n")
	assert.Contains(t, out, "func NewUserProfile(name String, age Int) UserProfile {")
	assert.Contains(t, out, "func (u UserProfile) WithName(value String) UserProfile {")
	assert.Contains(t, out, "return NewUserProfile(value, u.age)")
}

func TestGenerate_MissingPackageName(t *testing.T) {
	d := &decl.Declaration{
		Name:    "User",
		Kind:    decl.KindValue,
		Members: []decl.Member{{Kind: decl.MemberField, Name: "Name", Type: "string"}},
	}

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(testContext(t), resolve(t, []*decl.Declaration{d}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no package name")
}

func TestGenerate_FormattingFailureWritesSidecar(t *testing.T) {
	dir := t.TempDir()

	d := &decl.Declaration{
		Name:    "Broken",
		Kind:    decl.KindValue,
		PkgName: "models",
		Members: []decl.Member{{Kind: decl.MemberField, Name: "Fn", Type: "func("}},
	}

	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = dir

	_, err := NewGenerator(cfg).Generate(testContext(t), resolve(t, []*decl.Declaration{d}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting code")

	sidecar, err := os.ReadFile(filepath.Join(dir, "_broken_with.unformatted.go"))
	require.NoError(t, err)
	assert.Contains(t, string(sidecar), "func newBroken(fn func() Broken {")
}

func TestGenerate_Deterministic(t *testing.T) {
	src := `package models

import "time"

//wither:generate ref
type Session struct {
	ID      string
	Expires time.Time
	Tags    []string
}

//wither:generate
type Pair[A, B any] struct {
	First  A
	Second B
}
`

	first, _ := generateSource(t, src, analyze.Options{}, DefaultGeneratorConfig())
	second, _ := generateSource(t, src, analyze.Options{}, DefaultGeneratorConfig())

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Content, second[0].Content)
}

func TestGenerator_Signatures(t *testing.T) {
	decls, err := analyze.ParseSource("user.go", userSource, analyze.Options{UnexportedPrivate: true})
	require.NoError(t, err)

	p := resolve(t, decls)
	require.Len(t, p.Records, 1)

	sigs := NewGenerator(DefaultGeneratorConfig()).Signatures(p.Records[0])
	assert.Equal(t, []string{
		"func NewUser(name string, age int) User",
		"func (u User) WithName(value string) User",
	}, sigs)
}
