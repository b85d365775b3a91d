package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/CadixDev/Lorenz-sub001/model"
)

type classCounts struct {
	classes, fields, methods, params int
}

func (c *classCounts) add(other classCounts) {
	c.classes += other.classes
	c.fields += other.fields
	c.methods += other.methods
	c.params += other.params
}

func countClass(c *model.ClassMapping) classCounts {
	counts := classCounts{classes: 1, fields: len(c.Fields()), methods: len(c.Methods())}

	for _, m := range c.Methods() {
		counts.params += len(m.Parameters())
	}

	for _, inner := range c.InnerClasses() {
		counts.add(countClass(inner))
	}

	return counts
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats IN",
		Short: "Summarise a mapping file",
		Long:  `Print per-class counts of fields, methods, parameters and inner classes.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := a.loadSet(args[0])
			if err != nil {
				return err
			}

			a.renderStats(set)

			return nil
		},
	}
}

func (a *app) renderStats(set *model.MappingSet) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(a.stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Class", "De-obfuscated", "Inner", "Fields", "Methods", "Params"})

	var total classCounts

	for _, c := range set.TopLevelClasses() {
		counts := countClass(c)
		total.add(counts)

		tbl.AppendRow(table.Row{
			c.ObfuscatedName(),
			c.DeobfuscatedName(),
			counts.classes - 1,
			counts.fields,
			counts.methods,
			counts.params,
		})
	}

	tbl.AppendFooter(table.Row{"Total", set.Len(), total.classes - set.Len(), total.fields, total.methods, total.params})
	tbl.Render()
}
