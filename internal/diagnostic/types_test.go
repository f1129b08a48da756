package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorJoinsErrorsOnly(t *testing.T) {
	var d Diagnostics

	require.NoError(t, d.Error())
	assert.True(t, d.IsValid())

	d.AddInfo(CodeUnsupportedKind, "skipped", "models.Status", "")
	d.AddWarning(CodeUnrepresentableField, "no type", "models.User", "age")
	require.NoError(t, d.Error())

	d.AddError(CodeDuplicateField, `field "name" declared twice`, "models.User", "name")
	d.AddError(CodeNameCollision, "WithName already declared", "models.User", "")

	assert.True(t, d.HasErrors())
	assert.EqualError(t, d.Error(),
		`[models.User] name: [duplicate_field] field "name" declared twice; `+
			`[models.User]: [name_collision] WithName already declared`)
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics

	a.AddError("e1", "first", "", "")
	b.AddWarning("w1", "second", "", "")
	b.AddInfo("i1", "third", "", "")
	b.AddError("e2", "fourth", "", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 4)
	assert.Equal(t, "e1", all[0].Code)
	assert.Equal(t, "e2", all[1].Code)
	assert.Equal(t, DiagnosticWarning, all[2].Severity)
	assert.Equal(t, DiagnosticInfo, all[3].Severity)
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "[c] msg", Diagnostic{Code: "c", Message: "msg"}.String())
	assert.Equal(t, "[T] f: msg", Diagnostic{Declaration: "T", Field: "f", Message: "msg"}.String())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
