package transport_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/transport"
)

var (
	credID    = credential.Hash(commitment.HashString("credential"))
	proofHash = credential.Hash(commitment.HashString("proof"))
	now       = time.Unix(1_756_000_000, 0)
)

func TestProofPayloadRoundTrip(t *testing.T) {
	p := transport.NewProofPayload(credID, proofHash, now)

	data, err := p.Encode()
	require.NoError(t, err)

	back, err := transport.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)
	assert.Equal(t, transport.PayloadProof, back.Type)
	assert.Equal(t, now.Unix(), back.Timestamp)
}

func TestCredentialPayloadRoundTrip(t *testing.T) {
	p := transport.NewCredentialPayload(credID, now)

	data, err := p.Encode()
	require.NoError(t, err)

	back, err := transport.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, transport.PayloadCredential, back.Type)
	assert.True(t, back.ProofHash.IsZero())
}

func TestPayloadWireFormat(t *testing.T) {
	data, err := transport.NewProofPayload(credID, proofHash, now).Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "type")
	assert.Contains(t, raw, "credentialId")
	assert.Contains(t, raw, "proofHash")
	assert.Contains(t, raw, "timestamp")
	assert.Equal(t, credID.String(), raw["credentialId"])
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	_, err := transport.Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = transport.Decode([]byte(`{"type":"login","timestamp":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payload type")

	// A proof payload must carry its proof hash.
	data, err := transport.NewProofPayload(credID, credential.ZeroHash, now).Encode()
	require.NoError(t, err)
	_, err = transport.Decode(data)
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	p := transport.NewProofPayload(credID, proofHash, now)

	assert.False(t, p.Expired(now))
	assert.False(t, p.Expired(now.Add(transport.TTL)))
	assert.True(t, p.Expired(now.Add(transport.TTL+time.Second)))

	// A payload from the future is treated as expired too.
	assert.True(t, p.Expired(now.Add(-time.Second)))
}
