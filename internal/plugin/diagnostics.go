// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"bytes"
	"context"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"
	"gonum.org/v1/gonum/stat"

	"github.com/anchorlabs/vault-plugin-secrets-anchorkem/internal/anchorkem"
)

const defaultSelfTestTrials = 256

func (b *kemBackend) pathDiagnostics() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "diagnostics/self-test",
			Fields: map[string]*framework.FieldSchema{
				"trials": {
					Type:        framework.TypeInt,
					Default:     defaultSelfTestTrials,
					Description: "Number of independent local key-gen/encapsulate/decapsulate round trips to run.",
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.handleSelfTest,
					Summary:  "Run repeated local round trips and report the agreement rate.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleSelfTest,
					Summary:  "Run repeated local round trips and report the agreement rate.",
				},
			},
			HelpSynopsis:    "Measure the empirical key-agreement rate.",
			HelpDescription: pathDiagnosticsHelpDesc,
		},
	}
}

// selfTestResult summarizes one batch of local round trips.
type selfTestResult struct {
	trials        int
	agreements    int
	agreementRate float64
	stdError      float64
}

// runSelfTestTrials exercises KeyGen/Encapsulate/Decapsulate entirely
// in-process against freshly generated key pairs, never touching
// storage. It exists to give operators a cheap way to confirm the
// reconciliation parameters still deliver the expected agreement rate
// on the host's build, independent of any stored key material.
func runSelfTestTrials(trials int) (selfTestResult, error) {
	samples := make([]float64, trials)
	agree := 0

	for i := 0; i < trials; i++ {
		pk, vault, err := anchorkem.KeyGen()
		if err != nil {
			return selfTestResult{}, err
		}

		ct, sharedA, err := anchorkem.Encapsulate(pk)
		if err != nil {
			vault.Destroy()
			return selfTestResult{}, err
		}

		sharedB := anchorkem.Decapsulate(ct, vault)
		vault.Destroy()

		ok := bytes.Equal(sharedA[:], sharedB[:])
		sharedA.Zero()
		sharedB.Zero()

		if ok {
			agree++
			samples[i] = 1
		} else {
			samples[i] = 0
		}
	}

	rate := stat.Mean(samples, nil)
	stdErr := 0.0
	if trials > 1 {
		stdErr = stat.StdErr(stat.StdDev(samples, nil), float64(trials))
	}

	return selfTestResult{
		trials:        trials,
		agreements:    agree,
		agreementRate: rate,
		stdError:      stdErr,
	}, nil
}

func (b *kemBackend) handleSelfTest(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	trials := data.Get("trials").(int)
	if trials <= 0 {
		trials = defaultSelfTestTrials
	}

	result, err := runSelfTestTrials(trials)
	if err != nil {
		return nil, err
	}

	return &logical.Response{
		Data: map[string]interface{}{
			"trials":         result.trials,
			"agreements":     result.agreements,
			"agreement_rate": result.agreementRate,
			"std_error":      result.stdError,
		},
	}, nil
}

const pathDiagnosticsHelpDesc = `
Runs a configurable number of independent key-gen/encapsulate/decapsulate
round trips entirely in memory and reports the fraction that produced
matching shared keys on both sides, along with its standard error. Use
this to sanity-check the reconciliation parameters after a build or
configuration change, not as a substitute for per-key correctness.
`
