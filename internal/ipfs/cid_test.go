package ipfs

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCIDFromBytes32RoundTrip(t *testing.T) {
	var digest [32]byte
	for i := range digest {
		digest[i] = byte(i * 7)
	}

	cid := CIDFromBytes32(digest)
	assert.Len(t, cid, 46)
	assert.Equal(t, "Qm", cid[:2])

	back, err := bytes32FromCID(cid)
	require.NoError(t, err)
	assert.Equal(t, digest, back)
}

func TestBytes32FromCIDRejectsForeignMultihash(t *testing.T) {
	raw := append([]byte{0x13, 0x20}, make([]byte, 32)...)
	_, err := bytes32FromCID(base58.Encode(raw))
	assert.ErrorIs(t, err, ErrInvalidCID)

	_, err = bytes32FromCID("not-base58-0OIl")
	assert.ErrorIs(t, err, ErrInvalidCID)

	_, err = bytes32FromCID(base58.Encode([]byte{0x12, 0x20, 0x01}))
	assert.ErrorIs(t, err, ErrInvalidCID)
}
