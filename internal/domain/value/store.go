package value

import "fmt"

// Store is the canonical short store code used across the catalog. Source
// campaign/advertiser identifiers are mapped onto these codes by the adapter
// configuration; an identifier without a mapping is excluded, never defaulted.
type Store string

const (
	StoreAmazon    Store = "amz"
	StoreHomeDepot Store = "hd"
	StoreLowes     Store = "lowes"
	StoreAcme      Store = "acme"
	StoreAce       Store = "ace"
	StoreWalmart   Store = "walmart"
	StoreToolNut   Store = "tn"
	StoreZoro      Store = "zoro"
	StoreNorthern  Store = "northern"
)

func (s Store) String() string {
	return string(s)
}

func (s Store) Valid() bool {
	switch s {
	case StoreAmazon, StoreHomeDepot, StoreLowes, StoreAcme, StoreAce,
		StoreWalmart, StoreToolNut, StoreZoro, StoreNorthern:
		return true
	}

	return false
}

func ParseStore(raw string) (Store, error) {
	store := Store(raw)
	if !store.Valid() {
		return "", fmt.Errorf("unknown store code %q", raw)
	}

	return store, nil
}
