package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/sunilmamillapall1/pcycle/pkg/secrets"
)

var secretsFile string

var secretsCmd = &cobra.Command{
	Use: "secrets",
	Example: `  // generate new key and set environment variable
  export MASTER_KEY=$(pcycle secrets generatekey)

  // store a community string for one PDU
  pcycle secrets store pdu1.mgmt sw0rdf1sh

  // store the fallback community used when a PDU has no entry
  pcycle secrets store default public

  // list PDUs with stored communities
  pcycle secrets list -f communities.json`,
	Short: "Manage SNMP community strings for PDUs",
	Long:  "Manage the encrypted per-PDU community string store. Requires generating a key and setting the 'MASTER_KEY' environment variable.",
}

var secretsGenerateKeyCmd = &cobra.Command{
	Use:   "generatekey",
	Args:  cobra.NoArgs,
	Short: "Generates a new 32-byte master key (in hex).",
	Run: func(cmd *cobra.Command, args []string) {
		key, err := secrets.GenerateMasterKey()
		if err != nil {
			fmt.Printf("Error generating master key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", key)
	},
}

var secretsStoreCmd = &cobra.Command{
	Use:   "store <pdu-host> <community>",
	Args:  cobra.ExactArgs(2),
	Short: "Stores a community string for a PDU host.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := secrets.OpenStore(secretsFile)
		if err != nil {
			log.Error().Err(err).Msg("failed to open community store")
			os.Exit(1)
		}
		if err := store.StoreCommunity(args[0], args[1]); err != nil {
			log.Error().Err(err).Msg("failed to store community string")
			os.Exit(1)
		}
	},
}

var secretsRetrieveCmd = &cobra.Command{
	Use:   "retrieve <pdu-host>",
	Args:  cobra.ExactArgs(1),
	Short: "Prints the community string stored for a PDU host.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := secrets.OpenStore(secretsFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		community, err := store.GetCommunity(args[0])
		if err != nil {
			fmt.Printf("Error retrieving community string: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", community)
	},
}

var secretsListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "Lists PDU hosts with a stored community string.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := secrets.OpenStore(secretsFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		hosts, err := store.ListHosts()
		if err != nil {
			fmt.Printf("Error listing store: %v\n", err)
			os.Exit(1)
		}
		for _, host := range hosts {
			fmt.Println(host)
		}
	},
}

var secretsRemoveCmd = &cobra.Command{
	Use:   "remove <pdu-host>",
	Args:  cobra.ExactArgs(1),
	Short: "Removes the stored community string for a PDU host.",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := secrets.OpenStore(secretsFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := store.RemoveCommunity(args[0]); err != nil {
			fmt.Printf("Error removing community string: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	secretsCmd.PersistentFlags().StringVarP(&secretsFile, "file", "f", "communities.json", "Set path to the community secrets file")

	secretsCmd.AddCommand(secretsGenerateKeyCmd)
	secretsCmd.AddCommand(secretsStoreCmd)
	secretsCmd.AddCommand(secretsRetrieveCmd)
	secretsCmd.AddCommand(secretsListCmd)
	secretsCmd.AddCommand(secretsRemoveCmd)
	rootCmd.AddCommand(secretsCmd)
}
