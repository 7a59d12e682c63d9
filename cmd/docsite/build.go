package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/docsite"
)

var buildStrict bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site as static files",
	Long: `Renders every markdown page through the theme into the output
directory, together with the search index, sitemap, feed, robots.txt,
and static assets. With --strict, broken links and other structural
check errors fail the build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := docsite.NewBuilder(siteCfg)
		b.Strict = buildStrict
		return b.Build(cmd.Context())
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail the build on check errors")
	rootCmd.AddCommand(buildCmd)
}
