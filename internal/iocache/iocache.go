// Package iocache persists profiling results: a cache of computed profiles
// and an optional history of every profiling run.
package iocache

import (
	"sync"

	"github.com/huangsam/gitfolio/internal/contract"
)

// CacheStoreManager manages the profile cache and history stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	profiles     contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// NewCacheStoreManager wraps already-open stores. Either may be nil.
func NewCacheStoreManager(profiles contract.CacheStore, history contract.HistoryStore) *CacheStoreManager {
	return &CacheStoreManager{profiles: profiles, history: history}
}

// GetProfileStore returns the profile CacheStore.
func (mgr *CacheStoreManager) GetProfileStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.profiles
}

// GetHistoryStore returns the HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
