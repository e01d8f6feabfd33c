// Package chain submits disclosure proofs to the credential chain through a
// narrow submit/query interface. The chain itself is an external
// collaborator; this package only speaks its gateway API and decodes its
// pallet-style module errors.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/disclosure"
)

// ModuleError is a decoded on-chain dispatch error: the pallet section, the
// error name, and its documentation string.
type ModuleError struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Docs    string `json:"docs"`
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("chain error %s.%s: %s", e.Section, e.Name, e.Docs)
}

// Outcome reports the result of a submission once it is in a block.
type Outcome struct {
	Success   bool         `json:"success"`
	TxHash    string       `json:"tx_hash,omitempty"`
	Finalized bool         `json:"finalized"`
	Err       *ModuleError `json:"error,omitempty"`
}

// Submitter submits a selective-disclosure proof for on-chain verification.
type Submitter interface {
	Submit(ctx context.Context, credentialID credential.Hash, fields disclosure.Set, proofHash credential.Hash) (*Outcome, error)
}

// HTTPSubmitter talks to a chain gateway over HTTP. Transport failures and
// server errors are retried with exponential backoff; chain-level rejections
// (module errors) are final and returned in the Outcome.
type HTTPSubmitter struct {
	BaseURL string
	Client  *http.Client

	// MaxRetries bounds the backoff retries per submission. Zero means
	// the default of 4.
	MaxRetries uint64
}

type submitRequest struct {
	CredentialID   string `json:"credential_id"`
	FieldsToReveal []int  `json:"fields_to_reveal"`
	ProofHash      string `json:"proof_hash"`
	IdempotencyKey string `json:"idempotency_key"`
}

func (s *HTTPSubmitter) Submit(ctx context.Context, credentialID credential.Hash, fields disclosure.Set, proofHash credential.Hash) (*Outcome, error) {
	body, err := json.Marshal(submitRequest{
		CredentialID:   credentialID.String(),
		FieldsToReveal: fields.Sorted(),
		ProofHash:      proofHash.String(),
		// One key per logical submission; retries reuse it so the
		// gateway can deduplicate.
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	maxRetries := s.MaxRetries
	if maxRetries == 0 {
		maxRetries = 4
	}

	var outcome *Outcome
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/disclosures", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return err // transport error, retryable
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("gateway returned %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("gateway rejected submission: %d", resp.StatusCode))
		}

		var decoded Outcome
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("decode submission outcome: %w", err))
		}
		outcome = &decoded
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("submit disclosure: %w", err)
	}
	return outcome, nil
}
