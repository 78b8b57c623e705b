package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitfolio/core/profile"
	"github.com/huangsam/gitfolio/internal/contract"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL bounds how long a cached profile is trusted.
const cacheTTL = 7 * 24 * time.Hour

// cachedProfile returns a cached profile for the repository state when one
// exists, and profiles and stores otherwise. Without a repository hash the
// log cannot be pinned to a state, so the cache is bypassed.
func cachedProfile(ctx context.Context, cfg *contract.Config, profiler *profile.Profiler, repoHash string, mgr contract.CacheManager) (*profile.Result, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	if store == nil || repoHash == "" {
		return profiler.Profile(ctx, cfg.View, cfg.Languages)
	}

	key := generateCacheKey(cfg, repoHash)
	if result := checkCacheHit(store, key); result != nil {
		contract.Logger().WithField("key", key[:12]).Debug("profile cache hit")
		return result, nil
	}
	return computeAndStore(ctx, cfg, profiler, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *profile.Result {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // Stale or version mismatch
	}
	var result profile.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, profiler *profile.Profiler, store contract.CacheStore, key string) (*profile.Result, error) {
	result, err := profiler.Profile(ctx, cfg.View, cfg.Languages)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store profile in cache", err)
		}
	}
	return result, nil
}

// generateCacheKey creates a unique key from the source, its HEAD and the scan options
func generateCacheKey(cfg *contract.Config, repoHash string) string {
	key := fmt.Sprintf("%s:%s:%s:%t", cfg.SourcePath, repoHash, cfg.View, cfg.Languages)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
