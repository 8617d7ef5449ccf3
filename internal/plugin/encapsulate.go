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

func (b *kemBackend) pathEncapsulate() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "encapsulate/" + framework.GenericNameRegex("name"),
			Fields: map[string]*framework.FieldSchema{
				"name": {
					Type:        framework.TypeString,
					Description: "Name of the KEM key pair to encapsulate against.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleEncapsulate,
					Summary:  "Encapsulate a fresh shared key against the named public key.",
				},
			},
			HelpSynopsis:    "Encapsulate a shared key.",
			HelpDescription: pathEncapsulateHelpDesc,
		},
	}
}

func (b *kemBackend) handleEncapsulate(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	name := data.Get("name").(string)

	entry, err := b.getOrLoadKey(ctx, req.Storage, name)
	if err != nil {
		if err == errKeyNotFound {
			return logical.ErrorResponse("no KEM key pair found at %q", name), logical.ErrInvalidRequest
		}
		return nil, err
	}

	ct, shared, err := anchorkem.Encapsulate(entry.pub)
	if err != nil {
		return nil, fmt.Errorf("encapsulate: %w", err)
	}
	defer shared.Zero()

	return &logical.Response{
		Data: map[string]interface{}{
			"ciphertext": base64.StdEncoding.EncodeToString(ct.Marshal()),
			"shared_key": base64.StdEncoding.EncodeToString(shared[:]),
		},
	}, nil
}

const pathEncapsulateHelpDesc = `
Draws fresh ephemeral randomness, derives a ciphertext against the named
key pair's public half, and returns the ciphertext alongside the shared
key it encodes. Each call produces a new, independent shared key.
`
