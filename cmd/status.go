package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	pcycle "github.com/sunilmamillapall1/pcycle/internal"
	"github.com/sunilmamillapall1/pcycle/internal/util"
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
	"github.com/sunilmamillapall1/pcycle/pkg/snmp"
)

// The `status` command reads outlet states from one IBM PDU without
// toggling anything.
var statusCmd = &cobra.Command{
	Use: "status <pdu-host>",
	Example: `  // read every outlet on the PDU
  pcycle status pdu1.mgmt
  // read specific outlets
  pcycle status pdu1.mgmt --outlets 3,4`,
	Short: "Read outlet states from a PDU",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			host    = args[0]
			auth    = pdu.ParseAuthScheme(viper.GetString("cycle.auth"))
			outlets []int
		)
		if list := viper.GetString("status.outlets"); list != "" {
			entries, err := pcycle.BuildEntries([]string{host}, []string{"ibm"}, []string{list}, auth)
			if err != nil {
				log.Error().Err(err).Msg("invalid outlet list")
				os.Exit(pdu.ExitCode(err))
			}
			outlets = entries[0].Outlets
		}

		store := util.BuildCommunityStore()
		statuses, err := pcycle.ReadOutletStates(func(h string, scheme pdu.AuthScheme) (snmp.Session, error) {
			community, err := store.GetCommunity(h)
			if err != nil {
				return nil, err
			}
			return snmp.Open(h, scheme, community)
		}, host, auth, outlets)
		if err != nil {
			log.Error().Err(err).Msgf("failed to read outlet states from %s", host)
			os.Exit(pdu.ExitCode(err))
		}

		output, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal outlet states")
			os.Exit(1)
		}
		fmt.Println(string(output))
	},
}

func init() {
	addFlag("status.outlets", statusCmd, "outlets", "O", "", "Comma-joined outlet numbers to read (default: all)")
	addFlag("cycle.auth", statusCmd, "auth", "a", "v1", "SNMP auth scheme (v1|v2c)")
	addFlag("community", statusCmd, "community", "", "", "Set the SNMP community string")
	addFlag("secrets.file", statusCmd, "secrets-file", "", "communities.json", "Set path to the community secrets file")

	rootCmd.AddCommand(statusCmd)
}
