// The cmd package implements the interface for the pcycle CLI. The
// files contained in this package only contain implementations for
// handling CLI arguments and passing them to functions within pcycle's
// internal API.
//
// Each CLI subcommand has at least one corresponding internal file with
// an API routine that implements the command's functionality.
//
// For example:
//
//	cmd/cycle.go   --> internal/cycle.go ( pcycle.Orchestrator.PowerCycle() )
//	cmd/status.go  --> internal/status.go ( pcycle.ReadOutletStates() )
//	cmd/history.go --> internal/cache/sqlite ( sqlite.GetRunRecords() )
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	pcycle "github.com/sunilmamillapall1/pcycle/internal"
	ilog "github.com/sunilmamillapall1/pcycle/internal/log"
	"github.com/sunilmamillapall1/pcycle/internal/util"
)

var logLevel = ilog.INFO

// The `root` command doesn't do anything on its own except display
// a help message and then exits.
var rootCmd = &cobra.Command{
	Use:   "pcycle",
	Short: "SNMP-based PDU power-cycling tool",
	Long:  "Power-cycle a server's BMC by toggling the PDU outlets that feed it.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			err := cmd.Help()
			if err != nil {
				log.Error().Err(err).Msg("failed to print help")
			}
			os.Exit(0)
		}
	},
}

// This Execute() function is called from main to run the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitializeConfig)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Set the config file path")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level", "Set the logging level (debug|info|warn|error|disabled|trace)")
	rootCmd.PersistentFlags().String("log-path", "", "Set a file to also write logs to")
	rootCmd.PersistentFlags().String("history", fmt.Sprintf("/tmp/%s/pcycle/history.db", util.GetCurrentUsername()), "Set the cycle run history path")

	// bind viper config flags with cobra
	checkBindFlagError(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))
	checkBindFlagError(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
	checkBindFlagError(viper.BindPFlag("log-path", rootCmd.PersistentFlags().Lookup("log-path")))
	checkBindFlagError(viper.BindPFlag("history", rootCmd.PersistentFlags().Lookup("history")))
}

func checkBindFlagError(err error) {
	if err != nil {
		log.Error().Err(err).Msg("failed to bind cobra/viper flag")
	}
}

// addFlag registers a command flag and binds it to a viper key in one
// step so the two can never drift apart.
func addFlag(key string, cmd *cobra.Command, name, shorthand string, value any, usage string) {
	switch v := value.(type) {
	case string:
		cmd.Flags().StringP(name, shorthand, v, usage)
	case bool:
		cmd.Flags().BoolP(name, shorthand, v, usage)
	case int:
		cmd.Flags().IntP(name, shorthand, v, usage)
	case []string:
		cmd.Flags().StringSliceP(name, shorthand, v, usage)
	default:
		log.Error().Msgf("unhandled flag type for %s", name)
		return
	}
	checkBindFlagError(viper.BindPFlag(key, cmd.Flags().Lookup(name)))
}

// InitializeConfig() runs after flag parsing: it sets up the global
// logger from --log-level/--log-path and loads the config file, if any.
func InitializeConfig() {
	if err := ilog.Init(logLevel, viper.GetString("log-path")); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	viper.AutomaticEnv()
	if viper.IsSet("config") {
		if err := pcycle.LoadConfig(viper.GetString("config")); err != nil {
			log.Error().Err(err).Msg("failed to load config")
		}
		return
	}

	config_dir := os.Getenv("XDG_CONFIG_HOME")
	if config_dir == "" {
		config_dir = "$HOME/.config"
	}
	viper.AddConfigPath(config_dir + "/pcycle")
	viper.SetConfigName("config")
	// File type left unspecified; Viper will auto-parse based on extension
	// e.g. ~/.config/pcycle/config.yaml will parse as YAML
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Error().Err(fmt.Errorf("failed to load config file: %w", err)).Msg("failed to load config")
		}
	}
}

// SetDefaults() resets all of the viper properties back to their
// default values.
func SetDefaults() {
	viper.SetDefault("config", "")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-path", "")
	viper.SetDefault("history", fmt.Sprintf("/tmp/%s/pcycle/history.db", util.GetCurrentUsername()))
	viper.SetDefault("cycle.auth", "v1")
	viper.SetDefault("cycle.power-off-timeout", 40)
	viper.SetDefault("cycle.power-on-timeout", 40)
	viper.SetDefault("cycle.ping-timeout", 300)
	viper.SetDefault("cycle.delegate-script", "eaton-power-cycle")
	viper.SetDefault("secrets.file", "communities.json")
}
