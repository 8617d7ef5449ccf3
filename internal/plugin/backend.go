// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

// Package plugin implements a HashiCorp Vault secrets engine around the
// anchorkem key encapsulation mechanism. It manages named KEM key pairs:
// a key's public half is readable storage, its secret half never leaves
// the backend, and encapsulate/decapsulate are exposed as request paths
// so a caller never needs to hold the secret vector itself.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/anchorlabs/vault-plugin-secrets-anchorkem/internal/anchorkem"
)

const keyStoragePrefix = "keys/"

var errKeyNotFound = errors.New("anchorkem key not found")

// kemBackend is the main backend struct for the KEM secrets engine. It
// caches decoded key material in memory so encapsulate/decapsulate do not
// pay expansion and vault-reconstruction cost on every request.
type kemBackend struct {
	*framework.Backend

	cacheLock sync.RWMutex
	cache     map[string]*cachedKey
}

// cachedKey holds the decoded form of a stored key record: the public
// key plus a live SecretVault wrapping its secret coefficients.
type cachedKey struct {
	pub   *anchorkem.PublicKey
	vault *anchorkem.SecretVault
}

// Factory creates a new instance of the kemBackend. This is the entry
// point Vault calls when the plugin is mounted.
func Factory(ctx context.Context, conf *logical.BackendConfig) (logical.Backend, error) {
	b := &kemBackend{
		cache: make(map[string]*cachedKey),
	}

	b.Backend = &framework.Backend{
		BackendType:    logical.TypeLogical,
		Help:           backendHelp,
		InitializeFunc: b.initialize,
		Invalidate:     b.invalidate,
		Paths: framework.PathAppend(
			b.pathKeys(),
			b.pathEncapsulate(),
			b.pathDecapsulate(),
			b.pathDiagnostics(),
		),
	}

	if err := b.Setup(ctx, conf); err != nil {
		return nil, err
	}

	return b, nil
}

// initialize runs when the backend is first mounted or Vault starts. No
// startup work is required: keys are lazily decoded on first access.
func (b *kemBackend) initialize(ctx context.Context, req *logical.InitializationRequest) error {
	return nil
}

// invalidate is called by Vault when a storage key changes underneath
// this backend instance (replication, plugin reload, direct storage
// writes). Dropping the cache entry for that key forces a fresh decode
// on the next request instead of serving stale secret material.
func (b *kemBackend) invalidate(ctx context.Context, key string) {
	if len(key) <= len(keyStoragePrefix) || key[:len(keyStoragePrefix)] != keyStoragePrefix {
		return
	}
	name := key[len(keyStoragePrefix):]

	b.cacheLock.Lock()
	defer b.cacheLock.Unlock()
	b.evictLocked(name)
}

// evictLocked destroys and removes the cache entry for name. Callers
// must hold cacheLock.
func (b *kemBackend) evictLocked(name string) {
	if entry, ok := b.cache[name]; ok {
		entry.vault.Destroy()
		delete(b.cache, name)
	}
}

// getOrLoadKey returns the cached key for name, decoding it from storage
// (and populating the cache) on a miss.
func (b *kemBackend) getOrLoadKey(ctx context.Context, storage logical.Storage, name string) (*cachedKey, error) {
	b.cacheLock.RLock()
	if entry, ok := b.cache[name]; ok {
		b.cacheLock.RUnlock()
		return entry, nil
	}
	b.cacheLock.RUnlock()

	b.cacheLock.Lock()
	defer b.cacheLock.Unlock()

	if entry, ok := b.cache[name]; ok {
		return entry, nil
	}

	rec, err := b.readKeyRecord(ctx, storage, name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errKeyNotFound
	}

	entry, err := rec.decode()
	if err != nil {
		return nil, fmt.Errorf("decode stored key %q: %w", name, err)
	}

	b.cache[name] = entry
	return entry, nil
}

func backendStoragePath(name string) string {
	return keyStoragePrefix + name
}

const backendHelp = `
The anchorkem secrets engine manages named post-quantum key encapsulation
key pairs and exposes encapsulate/decapsulate over the Vault API so that
a key's secret vector never has to leave the backend.

Endpoints:
  keys/<name>          - create, read, list, and delete KEM key pairs
  encapsulate/<name>   - encapsulate a fresh shared key against a stored public key
  decapsulate/<name>   - recover the shared key a ciphertext encodes
  diagnostics/self-test - run repeated local round trips and report the agreement rate
`
