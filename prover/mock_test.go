package prover_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/prover"
)

func mockRequest() prover.Request {
	priv := prover.NewPrivateInputs()
	priv.Set("birth_timestamp", [32]byte{1})
	return prover.Request{
		CircuitID:    "age-verification",
		PublicInputs: [][]byte{{1, 2, 3}},
		Private:      priv,
	}
}

func TestMockDeterministic(t *testing.T) {
	m := &prover.Mock{}

	a, err := m.Prove(context.Background(), mockRequest())
	require.NoError(t, err)
	b, err := m.Prove(context.Background(), mockRequest())
	require.NoError(t, err)

	assert.Equal(t, a.ProofBytes, b.ProofBytes)
	assert.Len(t, a.ProofBytes, prover.MockProofSize)
	assert.Equal(t, 2, m.Calls())
}

func TestMockSensitivity(t *testing.T) {
	m := &prover.Mock{}

	base, err := m.Prove(context.Background(), mockRequest())
	require.NoError(t, err)

	other := mockRequest()
	other.Private.Set("birth_timestamp", [32]byte{2})
	changed, err := m.Prove(context.Background(), other)
	require.NoError(t, err)

	assert.NotEqual(t, base.ProofBytes, changed.ProofBytes)
}

func TestMockError(t *testing.T) {
	boom := fmt.Errorf("witness rejected")
	m := &prover.Mock{Err: boom}

	_, err := m.Prove(context.Background(), mockRequest())
	assert.ErrorIs(t, err, boom)
}

func TestMockDelayHonorsContext(t *testing.T) {
	m := &prover.Mock{Delay: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Prove(ctx, mockRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPrivateInputsRedacted(t *testing.T) {
	priv := prover.NewPrivateInputs()
	priv.Set("birth_timestamp", [32]byte{0xde, 0xad})

	rendered := fmt.Sprintf("%v %s", priv, priv)
	assert.NotContains(t, rendered, "de")
	assert.Contains(t, rendered, "[redacted]")
	assert.Equal(t, []string{"birth_timestamp"}, priv.Names())
}
