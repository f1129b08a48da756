package plan

import (
	"wither-generator/internal/decl"
	"wither-generator/internal/diagnostic"
	"wither-generator/internal/synth"
)

// ResolvedPlan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type ResolvedPlan struct {
	// Records holds one result per input declaration, in input order.
	// Skipped and invalid declarations are kept with no members.
	Records []*synth.Result
	// Diagnostics contains all findings from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Generated returns the results that carry generated members.
func (p *ResolvedPlan) Generated() []*synth.Result {
	var out []*synth.Result

	for _, r := range p.Records {
		if r.Constructor != nil {
			out = append(out, r)
		}
	}

	return out
}

// ByFile groups generated results by source file, keeping first-seen order
// of files and input order within a file.
func (p *ResolvedPlan) ByFile() ([]string, map[string][]*synth.Result) {
	var files []string

	groups := make(map[string][]*synth.Result)

	for _, r := range p.Generated() {
		key := fileKey(r.Declaration)
		if _, ok := groups[key]; !ok {
			files = append(files, key)
		}

		groups[key] = append(groups[key], r)
	}

	return files, groups
}

// fileKey is the source file, or the declaration name for declarations that
// have none (manifest input).
func fileKey(d *decl.Declaration) string {
	if d.File != "" {
		return d.File
	}

	return d.Name
}
