package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 128-bit content hash of a tile's raw pixel buffer.
// Pixel-identical tiles always produce the same fingerprint, so it is
// the key the dedup index works with.
type Fingerprint [16]byte

// Hex formats the fingerprint as lowercase hex without leading zeros,
// matching the integer %x formatting used in on-disk flat filenames.
func (f Fingerprint) Hex() string {
	s := strings.TrimLeft(hex.EncodeToString(f[:]), "0")
	if s == "" {
		return "0"
	}
	return s
}

func (f Fingerprint) String() string {
	return f.Hex()
}

// FingerprintFromUint64 builds a fingerprint from a small integer value.
func FingerprintFromUint64(v uint64) Fingerprint {
	var f Fingerprint
	for i := 15; i >= 8; i-- {
		f[i] = byte(v)
		v >>= 8
	}
	return f
}

// Hasher fingerprints a raw pixel buffer. It must be deterministic for
// identical pixel content.
type Hasher func(pixels []byte) (Fingerprint, error)

// Blake3Hasher is the default hasher: the leading 128 bits of the
// BLAKE3 digest of the pixel buffer.
func Blake3Hasher(pixels []byte) (Fingerprint, error) {
	sum := blake3.Sum256(pixels)
	var f Fingerprint
	copy(f[:], sum[:16])
	return f, nil
}

// MD5Hasher fingerprints with md5, producing trees whose flat filenames
// are compatible with ones written by the original gdal2mbtiles tool.
func MD5Hasher(pixels []byte) (Fingerprint, error) {
	return Fingerprint(md5.Sum(pixels)), nil
}

// NewHasher resolves a hasher by name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "blake3", "":
		return Blake3Hasher, nil
	case "md5":
		return MD5Hasher, nil
	default:
		return nil, fmt.Errorf("unknown hasher: %s (supported: blake3, md5)", name)
	}
}
