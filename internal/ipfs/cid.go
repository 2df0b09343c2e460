package ipfs

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrInvalidCID is returned for identifiers that are not sha2-256 CIDv0 strings
var ErrInvalidCID = errors.New("invalid content identifier")

// multihash header for a 32-byte sha2-256 digest
const (
	sha256Code   = 0x12
	sha256Length = 0x20
)

// CIDFromBytes32 converts an on-chain bytes32 digest into its CIDv0 ("Qm...") form.
func CIDFromBytes32(digest [32]byte) string {
	buf := make([]byte, 0, 2+len(digest))
	buf = append(buf, sha256Code, sha256Length)
	buf = append(buf, digest[:]...)
	return base58.Encode(buf)
}

// bytes32FromCID strips the multihash header of a CIDv0 string, returning the digest
// the contracts store.
func bytes32FromCID(cid string) ([32]byte, error) {
	var digest [32]byte

	raw, err := base58.Decode(cid)
	if err != nil {
		return digest, fmt.Errorf("%w: %v", ErrInvalidCID, err)
	}
	if len(raw) != 2+len(digest) || raw[0] != sha256Code || raw[1] != sha256Length {
		return digest, fmt.Errorf("%w: %q is not a sha2-256 CIDv0", ErrInvalidCID, cid)
	}

	copy(digest[:], raw[2:])
	return digest, nil
}
