package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cznic/mathutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	pcycle "github.com/sunilmamillapall1/pcycle/internal"
	"github.com/sunilmamillapall1/pcycle/internal/cache/sqlite"
	"github.com/sunilmamillapall1/pcycle/internal/util"
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
	"github.com/sunilmamillapall1/pcycle/pkg/snmp"
)

// Timeouts longer than an hour are almost certainly a units mistake.
const maxTimeoutSeconds = 3600

// The `cycle` command power-cycles one system through its PDU outlets:
// validate outlets, power them all off, verify the system went dark,
// power them back on, and wait for the system to answer pings again.
// The first failure anywhere aborts the run; outlets already toggled are
// left as-is.
var cycleCmd = &cobra.Command{
	Use: "cycle <system>",
	Example: `  // cycle a BMC fed by one IBM PDU, outlets 3 and 4
  pcycle cycle bmc42.mgmt --pdu pdu1.mgmt --vendor ibm --outlets 3,4
  // redundant feeds: two PDUs, one per supply
  pcycle cycle bmc42.mgmt --pdu pdu1.mgmt --pdu pdu2.mgmt --vendor ibm --vendor ibm --outlets 3 --outlets 3
  // eaton PDUs are handed to the external cycle script
  pcycle cycle bmc42.mgmt --pdu pdu9.mgmt --vendor eaton --outlets 1,2
  // v2c community from the CLI instead of the secret store
  pcycle cycle bmc42.mgmt --pdu pdu1.mgmt --vendor ibm --outlets 3,4 --auth v2c --community private`,
	Short: "Power-cycle a system through its PDU outlets",
	Long:  "Power-cycle a system by toggling the PDU outlets feeding it: off, verify dark, on, verify reachable.\nIBM PDUs are driven over SNMP; Eaton PDUs are delegated to an external script.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			system      = args[0]
			hosts       = viper.GetStringSlice("cycle.pdu-hosts")
			vendors     = viper.GetStringSlice("cycle.pdu-vendors")
			outletLists = viper.GetStringSlice("cycle.outlets")
			auth        = pdu.ParseAuthScheme(viper.GetString("cycle.auth"))
		)

		// Build the whole request up front; any shape, vendor, or outlet
		// problem rejects the run before a single protocol call.
		entries, err := pcycle.BuildEntries(hosts, vendors, outletLists, auth)
		if err != nil {
			log.Error().Err(err).Msg("invalid cycle request")
			os.Exit(pdu.ExitCode(err))
		}

		params := &pcycle.CycleParams{
			System:          system,
			Entries:         entries,
			PowerOffTimeout: timeoutFlag("cycle.power-off-timeout"),
			PowerOnTimeout:  timeoutFlag("cycle.power-on-timeout"),
			PingTimeout:     timeoutFlag("cycle.ping-timeout"),
			DelegateScript:  viper.GetString("cycle.delegate-script"),
		}

		// Community strings come from --community or the secret store;
		// the opener closes over the store so the orchestrator never
		// sees a credential.
		store := util.BuildCommunityStore()
		orch := pcycle.NewOrchestrator(func(host string, scheme pdu.AuthScheme) (snmp.Session, error) {
			community, err := store.GetCommunity(host)
			if err != nil {
				return nil, err
			}
			return snmp.Open(host, scheme, community)
		})

		runErr := orch.PowerCycle(params)
		recordHistory(params, runErr)
		if runErr != nil {
			log.Error().Err(runErr).Msgf("power cycle of %s failed", system)
			os.Exit(pdu.ExitCode(runErr))
		}
		log.Info().Msgf("power cycle of %s complete", system)
	},
}

// timeoutFlag reads a timeout flag in seconds and clamps it to a sane
// range before converting to a duration.
func timeoutFlag(key string) time.Duration {
	seconds := mathutil.Clamp(viper.GetInt(key), 0, maxTimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

// recordHistory appends one record per PDU entry to the local history
// file. Best-effort: a history failure never changes the run's outcome.
func recordHistory(params *pcycle.CycleParams, runErr error) {
	path := viper.GetString("history")
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Warn().Err(err).Msg("failed to create history directory")
		return
	}

	outcome, detail := "success", ""
	if runErr != nil {
		outcome, detail = "failure", runErr.Error()
	}
	records := make([]sqlite.RunRecord, 0, len(params.Entries))
	for _, entry := range params.Entries {
		records = append(records, sqlite.RunRecord{
			System:    params.System,
			Host:      entry.PDU.Host,
			Vendor:    entry.PDU.Vendor.String(),
			Outlets:   entry.OutletList(),
			Outcome:   outcome,
			Detail:    detail,
			Timestamp: time.Now(),
		})
	}
	if err := sqlite.InsertRunRecords(path, records...); err != nil {
		log.Warn().Err(err).Msg("failed to record run history")
	}
}

func init() {
	addFlag("cycle.pdu-hosts", cycleCmd, "pdu", "P", []string{}, "PDU host feeding the system (repeatable)")
	addFlag("cycle.pdu-vendors", cycleCmd, "vendor", "V", []string{}, "Vendor of the matching --pdu host (ibm|eaton)")
	addFlag("cycle.outlets", cycleCmd, "outlets", "O", []string{}, "Comma-joined outlet numbers on the matching --pdu host")
	addFlag("cycle.auth", cycleCmd, "auth", "a", "v1", "SNMP auth scheme (v1|v2c)")
	addFlag("community", cycleCmd, "community", "", "", "Set the SNMP community string for all PDUs")
	addFlag("secrets.file", cycleCmd, "secrets-file", "", "communities.json", "Set path to the community secrets file")
	addFlag("cycle.power-off-timeout", cycleCmd, "power-off-timeout", "", 40, "Seconds to wait for each outlet to power off")
	addFlag("cycle.power-on-timeout", cycleCmd, "power-on-timeout", "", 40, "Seconds to wait for each outlet to power on")
	addFlag("cycle.ping-timeout", cycleCmd, "ping-timeout", "", 300, "Seconds to wait for the system to answer pings after power on")
	addFlag("cycle.delegate-script", cycleCmd, "delegate-script", "", "eaton-power-cycle", "Executable handling eaton PDU cycling")

	rootCmd.AddCommand(cycleCmd)
}
