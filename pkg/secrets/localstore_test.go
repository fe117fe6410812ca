package secrets

import (
	"encoding/hex"
	"path/filepath"
	"testing"
)

func TestNewLocalCommunityStore(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "communities.json")
	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		t.Fatalf("Failed to create LocalCommunityStore: %v", err)
	}

	if store.filename != filename {
		t.Errorf("Expected filename %s, got %s", filename, store.filename)
	}
	if hex.EncodeToString(store.masterKey) != masterKey {
		t.Errorf("Expected master key %s, got %s", masterKey, hex.EncodeToString(store.masterKey))
	}
}

func TestGenerateMasterKey(t *testing.T) {
	key, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}
	if len(key) != 64 { // 32 bytes in hex representation
		t.Errorf("Expected key length 64, got %d", len(key))
	}
}

func TestStoreAndGetCommunity(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "communities.json")
	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		t.Fatalf("Failed to create LocalCommunityStore: %v", err)
	}

	if err := store.StoreCommunity("pdu1.mgmt", "sw0rdf1sh"); err != nil {
		t.Fatalf("Failed to store community: %v", err)
	}

	community, err := store.GetCommunity("pdu1.mgmt")
	if err != nil {
		t.Fatalf("Failed to get community: %v", err)
	}
	if community != "sw0rdf1sh" {
		t.Errorf("Expected community sw0rdf1sh, got %s", community)
	}

	// the ciphertext on disk must not be the plaintext
	if store.Communities["pdu1.mgmt"] == "sw0rdf1sh" {
		t.Error("community stored in plaintext")
	}
}

func TestGetCommunityFallsBackToDefault(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "communities.json")
	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		t.Fatalf("Failed to create LocalCommunityStore: %v", err)
	}

	if err := store.StoreCommunity(DEFAULT_KEY, "public"); err != nil {
		t.Fatalf("Failed to store default community: %v", err)
	}

	community, err := store.GetCommunity("pdu-with-no-entry.mgmt")
	if err != nil {
		t.Fatalf("Failed to fall back to default: %v", err)
	}
	if community != "public" {
		t.Errorf("Expected fallback community public, got %s", community)
	}
}

func TestRemoveCommunity(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "communities.json")
	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		t.Fatalf("Failed to create LocalCommunityStore: %v", err)
	}

	if err := store.StoreCommunity("pdu1.mgmt", "sw0rdf1sh"); err != nil {
		t.Fatalf("Failed to store community: %v", err)
	}
	if err := store.RemoveCommunity("pdu1.mgmt"); err != nil {
		t.Fatalf("Failed to remove community: %v", err)
	}
	if _, err := store.GetCommunity("pdu1.mgmt"); err == nil {
		t.Error("Expected error after removal")
	}
	if err := store.RemoveCommunity("pdu1.mgmt"); err == nil {
		t.Error("Expected error removing a missing entry")
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	masterKey, err := GenerateMasterKey()
	if err != nil {
		t.Fatalf("Failed to generate master key: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "communities.json")
	store, err := NewLocalCommunityStore(masterKey, filename, true)
	if err != nil {
		t.Fatalf("Failed to create LocalCommunityStore: %v", err)
	}
	if err := store.StoreCommunity("pdu1.mgmt", "sw0rdf1sh"); err != nil {
		t.Fatalf("Failed to store community: %v", err)
	}

	reopened, err := NewLocalCommunityStore(masterKey, filename, false)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	community, err := reopened.GetCommunity("pdu1.mgmt")
	if err != nil {
		t.Fatalf("Failed to get community after reopen: %v", err)
	}
	if community != "sw0rdf1sh" {
		t.Errorf("Expected community sw0rdf1sh, got %s", community)
	}
}

func TestStaticStore(t *testing.T) {
	store := NewStaticStore("private")
	community, err := store.GetCommunity("any-host")
	if err != nil {
		t.Fatalf("Failed to get community: %v", err)
	}
	if community != "private" {
		t.Errorf("Expected community private, got %s", community)
	}

	empty := NewStaticStore("")
	if _, err := empty.GetCommunity("any-host"); err == nil {
		t.Error("Expected error from empty static store")
	}
}
