package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sunilmamillapall1/pcycle/internal/cache/sqlite"
)

// The `history` command lists recorded outcomes of past cycle runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past power-cycle runs",
	Long:  "List the recorded outcome of past power-cycle runs, newest first.\nThe history file location is controlled by the --history flag.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := viper.GetString("history")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Info().Msgf("no run history found at %s", path)
			return
		}

		records, err := sqlite.GetRunRecords(path)
		if err != nil {
			log.Error().Err(err).Msg("failed to read run history")
			os.Exit(1)
		}

		output, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal run history")
			os.Exit(1)
		}
		fmt.Println(string(output))
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
