package cmd

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

func newMappingsCmd(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Print the effective API mapping table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				list := make([]any, 0, len(cfg.Table))
				for _, origin := range cfg.Table.Origins() {
					m := cfg.Table[origin]
					members := make(map[string]any, len(m.Members))
					for k, v := range m.Members {
						members[k] = v
					}
					list = append(list, map[string]any{
						"origin":  m.Origin,
						"rule":    string(m.Rule),
						"members": members,
					})
				}
				fmt.Fprintln(out, oj.JSON(list, &ojg.Options{Indent: 2, Sort: true}))
				return nil
			}

			for _, origin := range cfg.Table.Origins() {
				m := cfg.Table[origin]
				fmt.Fprintf(out, "%s\t%s\n", origin, m.Rule)
				keys := make([]string, 0, len(m.Members))
				for k := range m.Members {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "\t%s -> %s\n", k, m.Members[k])
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")
	return cmd
}
