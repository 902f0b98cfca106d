package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMD5HasherKnownValue(t *testing.T) {
	im := NewRGBA(1, 1, 0, 0, 0, 0)

	fp, err := MD5Hasher(im.Pix)
	require.NoError(t, err)
	require.Equal(t, "f1d3ff8443297732862df21dc4e57262", fp.Hex())
}

func TestBlake3HasherDeterministic(t *testing.T) {
	a := NewRGBA(2, 2, 10, 20, 30, 255)
	b := NewRGBA(2, 2, 10, 20, 30, 255)
	c := NewRGBA(2, 2, 11, 20, 30, 255)

	fpA, err := Blake3Hasher(a.Pix)
	require.NoError(t, err)
	fpB, err := Blake3Hasher(b.Pix)
	require.NoError(t, err)
	fpC, err := Blake3Hasher(c.Pix)
	require.NoError(t, err)

	require.Equal(t, fpA, fpB)
	require.NotEqual(t, fpA, fpC)
}

func TestFingerprintHex(t *testing.T) {
	require.Equal(t, "deadbeef", FingerprintFromUint64(0xdeadbeef).Hex())
	require.Equal(t, "0", Fingerprint{}.Hex())
	require.Equal(t, "1", FingerprintFromUint64(1).Hex())
}

func TestNewHasher(t *testing.T) {
	h, err := NewHasher("md5")
	require.NoError(t, err)
	fp, err := h([]byte{0, 0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, "f1d3ff8443297732862df21dc4e57262", fp.Hex())

	_, err = NewHasher("crc32")
	require.Error(t, err)
}
