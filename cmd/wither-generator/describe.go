package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wither-generator/internal/decl"
	"wither-generator/internal/synth"
)

var describeCmd = &cobra.Command{
	Use:   "describe [packages]",
	Short: "Show how each record's fields are classified and what would be generated",
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().String("type", "", "comma-separated type names to describe")
	describeCmd.Flags().String("manifest", "", "read declarations from a YAML manifest instead of Go packages")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := state.cfg

	src, err := sourceFlags(cmd, args)
	if err != nil {
		return err
	}

	decls, err := loadDeclarations(ctx, cfg, src)
	if err != nil {
		return err
	}

	p, err := resolvePlan(ctx, cfg, decls)
	if err != nil {
		return err
	}

	g := newGenerator(cfg)

	for _, res := range p.Records {
		d := res.Declaration
		location := ""
		if d.File != "" {
			location = d.Location()
		}

		state.out.Title(fmt.Sprintf("%s (%s, %s)", d.String(), d.Kind, d.Access()), location)

		if res.Skipped() {
			state.out.Item("not a record, nothing generated")
			continue
		}

		rows := make([][2]string, 0, len(d.Members))
		for i := range d.Members {
			m := &d.Members[i]
			if m.Kind == decl.MemberField {
				rows = append(rows, [2]string{fieldLabel(m), classify(m)})
			}
		}

		state.out.Table(rows)

		for _, sig := range g.Signatures(res) {
			state.out.Item(sig)
		}
	}

	state.out.Diagnostics(p.Diagnostics)

	return diagnosticsError(p)
}

func fieldLabel(m *decl.Member) string {
	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}

	if m.Type != "" {
		name += " " + m.Type
	}

	if m.Initializer != "" {
		name += " = " + m.Initializer
	}

	return name
}

// classify describes what a field contributes to the generated members.
func classify(m *decl.Member) string {
	f := synth.Field{Name: m.Name, Type: m.Type}

	switch {
	case m.HasAccessor:
		return "computed: excluded"
	case !f.Representable():
		return "unrepresentable: excluded"
	case m.HasModifier(decl.ModPrivate) || m.HasModifier(decl.ModFilePrivate):
		return "constructor parameter"
	default:
		return "constructor parameter, wither"
	}
}
