// Package secrets stores SNMP community strings per PDU host, either
// statically from a CLI flag or encrypted at rest in a local JSON file.
package secrets

// DEFAULT_KEY is the store entry used when a PDU host has no community
// of its own.
const DEFAULT_KEY = "default"

type CommunityStore interface {
	GetCommunity(host string) (string, error)
	StoreCommunity(host, community string) error
	ListHosts() ([]string, error)
	RemoveCommunity(host string) error
}
