package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunilmamillapall1/pcycle/internal/version"
)

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flag("rev").Value.String() == "true" {
			fmt.Println(version.GitCommit)
		} else {
			fmt.Println(version.Version)
		}
	},
}

// SetVersionInfo is called from main with the values baked in via
// ldflags at build time.
func SetVersionInfo(v, commit, date string) {
	version.Version = v
	version.GitCommit = commit
	version.BuildTime = date
	rootCmd.Version = fmt.Sprintf("%s (%s) built %s", v, commit, date)
}

func init() {
	versionCmd.Flags().Bool("rev", false, "show the version commit")
	rootCmd.AddCommand(versionCmd)
}
