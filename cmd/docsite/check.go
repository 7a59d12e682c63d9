package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/docsite"
	"github.com/eringen/docsite/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the site's structural invariants",
	Long: `Loads the content and reports broken nav/sidebar links and anchors,
malformed sidebar prefixes, out-of-range search fuzziness, dead nav
activeMatch patterns, and frontmatter that fails to parse or is badly
typed. Exits non-zero when any check reports an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := docsite.NewBuilder(siteCfg)
		problems, err := b.Check()
		if err != nil {
			return err
		}
		for _, p := range problems {
			fmt.Println(p)
		}
		if errs := check.Errors(problems); len(errs) > 0 {
			return fmt.Errorf("%d check error(s)", len(errs))
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
