package cmd

import (
	"fmt"
	"os"

	"github.com/agentic-research/cclua/internal/frontend"
	"github.com/agentic-research/cclua/internal/linter"
	"github.com/spf13/cobra"
)

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [input]",
		Short: "List syntax errors and untranslatable constructs without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load(args)
			if err != nil {
				return err
			}
			info, err := statSource(cfg.Input)
			if err != nil {
				return err
			}

			files := []string{cfg.Input}
			if info.IsDir() {
				if files, err = sourceFiles(cfg.Input); err != nil {
					return err
				}
			}

			issues := 0
			out := cmd.OutOrStdout()
			for _, path := range files {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				o.logger().Debug("checking", "path", path)

				for _, ve := range frontend.ASTErrors(cmd.Context(), content, path) {
					fmt.Fprintln(out, ve.Error())
					issues++
				}
				diags, err := linter.Lint(cmd.Context(), content)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				for _, d := range diags {
					fmt.Fprintf(out, "%s:%d:%d: %s\n", path, d.Line+1, d.Column+1, d.Message)
					issues++
				}
			}

			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			fmt.Fprintf(out, "%d file(s) checked, no issues\n", len(files))
			return nil
		},
	}
}
