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

func (b *kemBackend) pathDecapsulate() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "decapsulate/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the KEM key pair to decapsulate with.",
				},
				"ciphertext": {
					Type:        framework.TypeString,
					Description: "Base64-encoded ciphertext produced by encapsulate.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleDecapsulate,
					Summary:  "Recover the shared key a ciphertext encodes.",
				},
			},
			HelpSynopsis:    "Decapsulate a shared key.",
			HelpDescription: pathDecapsulateHelpDesc,
		},
	}
}

func (b *kemBackend) handleDecapsulate(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	name := data.Get("name").(string)
	rawCT := data.Get("ciphertext").(string)
	if rawCT == "" {
		return logical.ErrorResponse("ciphertext is required"), logical.ErrInvalidRequest
	}

	ctBytes, err := base64.StdEncoding.DecodeString(rawCT)
	if err != nil {
		return logical.ErrorResponse("ciphertext is not valid base64: %s", err), logical.ErrInvalidRequest
	}
	ct, err := anchorkem.UnmarshalCiphertext(ctBytes)
	if err != nil {
		return logical.ErrorResponse("%s", err), logical.ErrInvalidRequest
	}

	entry, err := b.getOrLoadKey(ctx, req.Storage, name)
	if err != nil {
		if err == errKeyNotFound {
			return logical.ErrorResponse("no KEM key pair found at %q", name), logical.ErrInvalidRequest
		}
		return nil, fmt.Errorf("load key %q: %w", name, err)
	}

	shared := anchorkem.Decapsulate(ct, entry.vault)
	defer shared.Zero()

	return &logical.Response{
		Data: map[string]interface{}{
			"shared_key": base64.StdEncoding.EncodeToString(shared[:]),
		},
	}, nil
}

const pathDecapsulateHelpDesc = `
Recovers the shared key encoded by a ciphertext produced by encapsulate,
using the secret vector of the named key pair. There is no explicit
failure mode: if the secret vector does not match the one the
ciphertext was encapsulated against, the returned key simply will not
agree with the encapsulator's.
`
