// Copyright 2024 The vault-plugin-secrets-anchorkem Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import "testing"

func TestRunSelfTestTrialsAllAgreeNormally(t *testing.T) {
	const trials = 32
	result, err := runSelfTestTrials(trials)
	if err != nil {
		t.Fatalf("runSelfTestTrials: %v", err)
	}
	if result.trials != trials {
		t.Errorf("trials = %d, want %d", result.trials, trials)
	}
	if result.agreements != trials {
		t.Errorf("agreements = %d, want %d", result.agreements, trials)
	}
	if result.agreementRate != 1.0 {
		t.Errorf("agreement_rate = %f, want 1.0", result.agreementRate)
	}
	if result.stdError != 0 {
		t.Errorf("std_error = %f, want 0 when every trial agrees", result.stdError)
	}
}

func TestRunSelfTestTrialsSingleTrial(t *testing.T) {
	result, err := runSelfTestTrials(1)
	if err != nil {
		t.Fatalf("runSelfTestTrials: %v", err)
	}
	if result.agreements != 1 {
		t.Errorf("agreements = %d, want 1", result.agreements)
	}
}
