package proofrepo

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/proof"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofDTO_KeepsEvidenceAndOutcome(t *testing.T) {
	pt, err := kernel.NewGeoPoint(19.4326, -99.1332)
	require.NoError(t, err)
	acc := 4.5
	p, err := proof.NewProofOfDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), pt, &acc,
		[]byte{0xff, 0xd8, 0xff}, "Luis", proof.Partial, "two boxes missing", "", time.Now())
	require.NoError(t, err)

	restored, err := toDomain(fromDomain(p))
	require.NoError(t, err)

	assert.Equal(t, p.ID(), restored.ID())
	assert.Equal(t, proof.Partial, restored.Outcome())
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, restored.Evidence())
	assert.Equal(t, "two boxes missing", restored.FailureReason())
	require.NotNil(t, restored.AccuracyMeters())
	assert.InDelta(t, 4.5, *restored.AccuracyMeters(), 1e-9)
	assert.True(t, p.Point().IsEqual(restored.Point()))
}
