package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// LocalCommunityStore keeps community strings encrypted at rest in a
// JSON file, one entry per PDU host, each encrypted with a key derived
// from the master key and the host.
type LocalCommunityStore struct {
	mu          sync.RWMutex
	masterKey   []byte
	filename    string
	Communities map[string]string `json:"communities"`
}

func NewLocalCommunityStore(masterKeyHex, filename string, create bool) (*LocalCommunityStore, error) {
	var communities map[string]string

	masterKey, err := hex.DecodeString(masterKeyHex)
	if err != nil {
		return nil, fmt.Errorf("unable to decode master key from hex representation: %v", err)
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if !create {
			return nil, fmt.Errorf("file %s does not exist", filename)
		}
		file, err := os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("unable to create file %s: %v", filename, err)
		}
		file.Close()
		communities = make(map[string]string)
	}

	if communities == nil {
		communities, err = loadCommunities(filename)
		if err != nil {
			return nil, fmt.Errorf("unable to load communities from file: %v", err)
		}
	}

	return &LocalCommunityStore{
		masterKey:   masterKey,
		filename:    filename,
		Communities: communities,
	}, nil
}

// GenerateMasterKey creates a 32-byte random key and returns it as a hex string.
func GenerateMasterKey() (string, error) {
	key := make([]byte, 32) // 32 bytes for AES-256
	_, err := rand.Read(key)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// GetCommunity decrypts and returns the community string for a host,
// falling back to the "default" entry when the host has none.
func (l *LocalCommunityStore) GetCommunity(host string) (string, error) {
	l.mu.RLock()
	encrypted, exists := l.Communities[host]
	if !exists {
		encrypted, exists = l.Communities[DEFAULT_KEY]
		host = DEFAULT_KEY
	}
	l.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("no community string stored for %s", host)
	}

	derivedKey := deriveAESKey(l.masterKey, host)
	return decryptAESGCM(derivedKey, encrypted)
}

// StoreCommunity encrypts the community string and persists the store.
func (l *LocalCommunityStore) StoreCommunity(host, community string) error {
	derivedKey := deriveAESKey(l.masterKey, host)
	encrypted, err := encryptAESGCM(derivedKey, []byte(community))
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.Communities[host] = encrypted
	err = saveCommunities(l.filename, l.Communities)
	l.mu.Unlock()
	return err
}

// ListHosts returns the hosts with a stored community, sorted. The
// community strings themselves are never listed.
func (l *LocalCommunityStore) ListHosts() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	hosts := make([]string, 0, len(l.Communities))
	for host := range l.Communities {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts, nil
}

// RemoveCommunity removes the stored entry for a host.
func (l *LocalCommunityStore) RemoveCommunity(host string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.Communities[host]; !exists {
		return fmt.Errorf("no community string stored for %s", host)
	}
	delete(l.Communities, host)
	return saveCommunities(l.filename, l.Communities)
}

// OpenStore opens (or creates) the local store at filename using the
// master key from the MASTER_KEY environment variable.
func OpenStore(filename string) (CommunityStore, error) {
	if filename == "" {
		return nil, fmt.Errorf("path to community store required")
	}

	masterKey := os.Getenv("MASTER_KEY")
	if masterKey == "" {
		return nil, fmt.Errorf("MASTER_KEY environment variable not set")
	}

	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open local community store: %v", err)
	}
	return store, nil
}

func saveCommunities(jsonFile string, store map[string]string) error {
	file, err := os.OpenFile(jsonFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(store)
}

func loadCommunities(jsonFile string) (map[string]string, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("unable to open community store %s: %v", jsonFile, err)
	}
	defer file.Close()

	store := make(map[string]string)
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&store)
	return store, err
}
