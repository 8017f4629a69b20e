package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/evilwizard/internal/game/ruleset"
)

var classesShowAbilities bool

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the playable classes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.close()
		return listClasses(cmd.OutOrStdout(), a.reg, classesShowAbilities)
	},
}

func init() {
	classesCmd.Flags().BoolVarP(&classesShowAbilities, "abilities", "a", false, "list each class's abilities")
}

func listClasses(w io.Writer, reg *ruleset.Registry, abilities bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCLASS\tHEALTH\tATTACK\tDESCRIPTION")
	for _, c := range reg.PlayerClasses() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", c.Number, c.Name, c.BaseHealth, c.BaseAttackPower, c.Description)
		if abilities {
			names := make([]string, len(c.Abilities))
			for i, ab := range c.Abilities {
				names[i] = fmt.Sprintf("%d. %s", i+1, ab.DisplayName)
			}
			fmt.Fprintf(tw, "\t\t\t\t%s\n", strings.Join(names, ", "))
		}
	}
	return tw.Flush()
}
