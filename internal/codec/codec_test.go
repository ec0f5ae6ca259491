package codec

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchainplus/core/internal/accumulator"
	"github.com/vchainplus/core/internal/keys"
	"github.com/vchainplus/core/internal/setops"
	"github.com/vchainplus/core/internal/setproof"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(4, rand.Reader)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(EncodePublicKey(&buf, pk))

	got, err := DecodePublicKey(&buf)
	assert.NoError(err)
	assert.Equal(pk.Qmax, got.Qmax)
	assert.True(pk.Gs[0].Equal(&got.Gs[0]))
	assert.True(pk.Grs[1][2].Equal(&got.Grs[1][2]))
	assert.True(pk.Hb.Equal(&got.Hb))
}

func TestValueRoundTrip(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(4, rand.Reader)
	assert.NoError(err)

	v, err := accumulator.Accumulate(pk, setops.New(0, 2))
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(EncodeValue(&buf, pk.Qmax, v))

	qmax, got, err := DecodeValue(&buf)
	assert.NoError(err)
	assert.Equal(pk.Qmax, qmax)
	assert.True(accumulator.Equal(v, got))

	// accR never crosses the wire.
	_, hasAccR := got.AccR()
	assert.False(hasAccR)
}

func TestProofRoundTrip(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(4, rand.Reader)
	assert.NoError(err)

	accI, err := accumulator.Accumulate(pk, setops.New(1))
	assert.NoError(err)

	p := setproof.Proof{Op: setproof.Intersection, WG: pk.Gs[0], WGb: pk.Gs[1], AccRI: pk.Gr[0], AccI: accI}

	var buf bytes.Buffer
	assert.NoError(EncodeProof(&buf, pk.Qmax, p))

	qmax, got, err := DecodeProof(&buf)
	assert.NoError(err)
	assert.Equal(pk.Qmax, qmax)
	assert.Equal(p.Op, got.Op)
	assert.True(p.WG.Equal(&got.WG))
	assert.True(p.WGb.Equal(&got.WGb))
	assert.True(p.AccRI.Equal(&got.AccRI))
	assert.True(accumulator.Equal(p.AccI, got.AccI))
}

func TestDecodeProofRejectsBadOpTag(t *testing.T) {
	assert := require.New(t)
	_, pk, err := keys.GenKeys(2, rand.Reader)
	assert.NoError(err)

	var buf bytes.Buffer
	assert.NoError(EncodeProof(&buf, pk.Qmax, setproof.Proof{Op: setproof.Difference}))

	// corrupt the op byte (right after the header) to an out-of-range tag.
	raw := buf.Bytes()
	headerLen := 4 + 6 + 4
	raw[headerLen] = 99

	_, _, err = DecodeProof(bytes.NewReader(raw))
	assert.Error(err)
}

func TestDecodePublicKeyRejectsBadMagic(t *testing.T) {
	_, err := DecodePublicKey(bytes.NewReader([]byte("not-a-valid-header-at-all")))
	require.Error(t, err)
}
