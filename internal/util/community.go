package util

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/sunilmamillapall1/pcycle/pkg/secrets"
)

// BuildCommunityStore picks the source of SNMP community strings for a
// run. A --community flag wins; otherwise the encrypted local store at
// secrets.file is opened.
func BuildCommunityStore() secrets.CommunityStore {
	if viper.IsSet("community") {
		log.Debug().Msg("--community specified, using it for all PDUs")
		return secrets.NewStaticStore(viper.GetString("community"))
	}

	secretsFile := viper.GetString("secrets.file")
	log.Debug().Msgf("--community not passed, using community store at %s", secretsFile)
	store, err := secrets.OpenStore(secretsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to open local community store")
		// fall back to the well-known read-only default
		return secrets.NewStaticStore("public")
	}
	return store
}
