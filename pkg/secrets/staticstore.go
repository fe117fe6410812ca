package secrets

import "fmt"

// StaticStore serves one community string for every PDU host. Used when
// --community is passed on the command line.
type StaticStore struct {
	Community string
}

func NewStaticStore(community string) *StaticStore {
	return &StaticStore{Community: community}
}

func (s *StaticStore) GetCommunity(host string) (string, error) {
	if s.Community == "" {
		return "", fmt.Errorf("no community string set")
	}
	return s.Community, nil
}

func (s *StaticStore) StoreCommunity(host, community string) error {
	return nil
}

func (s *StaticStore) ListHosts() ([]string, error) {
	return []string{DEFAULT_KEY}, nil
}

func (s *StaticStore) RemoveCommunity(host string) error {
	return nil
}
