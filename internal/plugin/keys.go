// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/anchorlabs/vault-plugin-secrets-anchorkem/internal/anchorkem"
)

// keyRecord is the on-disk representation of one named KEM key pair.
// Secret is stored as signed bytes (-1, 0, 1); Vault's storage backend,
// not process memory, is this secret's trust boundary.
type keyRecord struct {
	Seed   []byte `json:"seed"`
	B      []byte `json:"b"`
	Secret []int8 `json:"secret"`
}

func recordFromGenerated(pk *anchorkem.PublicKey, vault *anchorkem.SecretVault) *keyRecord {
	return &keyRecord{
		Seed:   append([]byte(nil), pk.Seed[:]...),
		B:      append([]byte(nil), pk.B...),
		Secret: vault.Export(),
	}
}

// decode reconstructs the live public key and secret vault this record
// describes.
func (r *keyRecord) decode() (*cachedKey, error) {
	pk, err := anchorkem.UnmarshalPublicKey(append(append([]byte(nil), r.Seed...), r.B...))
	if err != nil {
		return nil, err
	}
	vault, err := anchorkem.NewSecretVaultFromCoefficients(r.Secret)
	if err != nil {
		return nil, err
	}
	return &cachedKey{pub: pk, vault: vault}, nil
}

func (b *kemBackend) readKeyRecord(ctx context.Context, storage logical.Storage, name string) (*keyRecord, error) {
	entry, err := storage.Get(ctx, backendStoragePath(name))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	var rec keyRecord
	if err := entry.DecodeJSON(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (b *kemBackend) writeKeyRecord(ctx context.Context, storage logical.Storage, name string, rec *keyRecord) error {
	entry, err := logical.StorageEntryJSON(backendStoragePath(name), rec)
	if err != nil {
		return err
	}
	return storage.Put(ctx, entry)
}

// pathKeys returns the path configuration for keys/<name> and the
// keys/?list=true enumeration path.
func (b *kemBackend) pathKeys() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "keys/?$",
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ListOperation: &framework.PathOperation{
					Callback: b.handleKeysList,
					Summary:  "List the names of all stored KEM key pairs.",
				},
			},
			HelpSynopsis: "List KEM key pair names.",
		},
		{
			Pattern: "keys/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the KEM key pair.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.handleKeyCreate,
					Summary:  "Generate a new KEM key pair under this name.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleKeyCreate,
					Summary:  "Rotate the KEM key pair stored under this name.",
				},
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.handleKeyRead,
					Summary:  "Read the public half of a KEM key pair.",
				},
				logical.DeleteOperation: &framework.PathOperation{
					Callback: b.handleKeyDelete,
					Summary:  "Delete a KEM key pair.",
				},
			},
			ExistenceCheck:  b.keyExists,
			HelpSynopsis:    "Manage a named KEM key pair.",
			HelpDescription: pathKeysHelpDesc,
		},
	}
}

func (b *kemBackend) handleKeyCreate(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	name := data.Get("name").(string)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	pk, vault, err := anchorkem.KeyGen()
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	rec := recordFromGenerated(pk, vault)
	if err := b.writeKeyRecord(ctx, req.Storage, name, rec); err != nil {
		vault.Destroy()
		return nil, fmt.Errorf("persist key pair: %w", err)
	}

	b.cacheLock.Lock()
	b.evictLocked(name)
	b.cache[name] = &cachedKey{pub: pk, vault: vault}
	b.cacheLock.Unlock()

	b.Logger().Info("generated anchorkem key pair", "name", name)

	return &logical.Response{
		Data: map[string]interface{}{
			"name":       name,
			"public_key": base64.StdEncoding.EncodeToString(pk.Marshal()),
		},
	}, nil
}

func (b *kemBackend) handleKeyRead(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	name := data.Get("name").(string)
	entry, err := b.getOrLoadKey(ctx, req.Storage, name)
	if err != nil {
		if err == errKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"name":       name,
			"public_key": base64.StdEncoding.EncodeToString(entry.pub.Marshal()),
		},
	}, nil
}

func (b *kemBackend) handleKeyDelete(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	name := data.Get("name").(string)

	if err := req.Storage.Delete(ctx, backendStoragePath(name)); err != nil {
		return nil, err
	}

	b.cacheLock.Lock()
	b.evictLocked(name)
	b.cacheLock.Unlock()

	return nil, nil
}

func (b *kemBackend) handleKeysList(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	names, err := req.Storage.List(ctx, keyStoragePrefix)
	if err != nil {
		return nil, err
	}
	return logical.ListResponse(names), nil
}

func (b *kemBackend) keyExists(ctx context.Context, req *logical.Request, data *framework.FieldData) (bool, error) {
	entry, err := req.Storage.Get(ctx, backendStoragePath(data.Get("name").(string)))
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

const pathKeysHelpDesc = `
Each name addresses one independently generated KEM key pair. Writing to
keys/<name> runs anchorkem.KeyGen and persists the result, overwriting any
existing pair of that name. Reading returns only the serialized public
key; the secret vector is never returned over the Vault API.
`
