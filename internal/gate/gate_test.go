package gate

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() string {
	k := make([]byte, KeySize)
	for i := range k {
		k[i] = byte(i)
	}
	return hex.EncodeToString(k)
}

// fixedNoncePayload seals with a caller-chosen nonce so fixtures stay stable.
func fixedNoncePayload(t *testing.T, key string, suite Suite, nonce, msg []byte) SealedPayload {
	t.Helper()
	raw, err := hex.DecodeString(key)
	require.NoError(t, err)
	aead, err := newAEAD(suite, raw)
	require.NoError(t, err)
	return SealedPayload{Suite: suite, Nonce: nonce, Ciphertext: aead.Seal(nil, nonce, msg, nil)}
}

func TestAuthorizeMissingKey(t *testing.T) {
	_, err := Authorize("", DefaultPayload())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestAuthorizeInvalidKeyFormat(t *testing.T) {
	// an unknown suite would fail later; the key check must win
	bogus := SealedPayload{Suite: "rot13", Nonce: []byte{1}, Ciphertext: []byte{2}}
	for _, key := range []string{
		strings.Repeat("a", 63),
		strings.Repeat("a", 65),
		strings.Repeat("a", 32),
		strings.Repeat("z", 64),
		strings.Repeat("a", 62) + "g0",
		" " + strings.Repeat("a", 63),
	} {
		_, err := Authorize(key, bogus)
		assert.ErrorIs(t, err, ErrInvalidKeyFormat, key)
		assert.NotErrorIs(t, err, ErrDecryptionFailed, key)
	}
}

func TestAuthorizeSuccessIsDeterministic(t *testing.T) {
	for _, suite := range []Suite{SuiteAES256GCM, SuiteChaCha20Poly1305} {
		t.Run(string(suite), func(t *testing.T) {
			key := testKey()
			p := fixedNoncePayload(t, key, suite, make([]byte, NonceSize), []byte("unlock"))

			a, errA := Authorize(key, p)
			b, errB := Authorize(strings.ToUpper(key), p)
			require.NoError(t, errA)
			require.NoError(t, errB)
			assert.Equal(t, []byte("unlock"), a)
			assert.True(t, bytes.Equal(a, b))
		})
	}
}

func TestAuthorizeWrongKey(t *testing.T) {
	p := fixedNoncePayload(t, testKey(), SuiteAES256GCM, bytes.Repeat([]byte{7}, NonceSize), []byte("unlock"))
	wrong := strings.Repeat("ff", KeySize)

	_, err1 := Authorize(wrong, p)
	_, err2 := Authorize(wrong, p)
	assert.ErrorIs(t, err1, ErrDecryptionFailed)
	assert.ErrorIs(t, err2, ErrDecryptionFailed)
}

func TestAuthorizeTamperedAndMalformedPayloads(t *testing.T) {
	key := testKey()
	p := fixedNoncePayload(t, key, SuiteAES256GCM, make([]byte, NonceSize), []byte("unlock"))

	tampered := p
	tampered.Ciphertext = append([]byte(nil), p.Ciphertext...)
	tampered.Ciphertext[0] ^= 0xff
	_, err := Authorize(key, tampered)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	shortNonce := p
	shortNonce.Nonce = []byte{0, 1, 2}
	_, err = Authorize(key, shortNonce)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	unknown := p
	unknown.Suite = "rot13"
	_, err = Authorize(key, unknown)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	// a 16 byte blob is nothing but a tag
	_, err = Authorize(key, SealedPayload{Suite: SuiteAES256GCM, Nonce: make([]byte, NonceSize), Ciphertext: []byte("NULLKIA_TITAN_M\x00")})
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSealUsesFreshNonce(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	require.Len(t, key, KeyHexLen)
	raw, err := ParseKey(key)
	require.NoError(t, err)

	a, err := Seal(raw, []byte("unlock"), "")
	require.NoError(t, err)
	b, err := Seal(raw, []byte("unlock"), SuiteAES256GCM)
	require.NoError(t, err)
	assert.Equal(t, SuiteAES256GCM, a.Suite)
	assert.Len(t, a.Nonce, NonceSize)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)

	for _, p := range []SealedPayload{a, b} {
		pt, err := Authorize(key, p)
		require.NoError(t, err)
		assert.Equal(t, "unlock", string(pt))
	}

	_, err = Seal(raw[:16], []byte("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)
	_, err = Seal(raw, []byte("x"), "rot13")
	assert.ErrorIs(t, err, ErrUnknownSuite)
}

func TestPayloadBundleRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	raw, _ := ParseKey(key)
	p, err := Seal(raw, []byte("unlock"), SuiteChaCha20Poly1305)
	require.NoError(t, err)

	b, err := EncodePayload(p)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "payload.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	loaded, err := LoadPayload(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	pt, err := Authorize(key, loaded)
	require.NoError(t, err)
	assert.Equal(t, "unlock", string(pt))
}

func TestDecodePayloadRejectsMalformedBundles(t *testing.T) {
	for name, doc := range map[string]string{
		"yaml":       "suite: [",
		"suite":      "suite: rot13\nnonce: 000000000000000000000000\nciphertext: aa\n",
		"nonce len":  "nonce: 0000\nciphertext: aa\n",
		"nonce hex":  "nonce: zz0000000000000000000000\nciphertext: aa\n",
		"ciphertext": "nonce: 000000000000000000000000\nciphertext: \"\"\n",
	} {
		_, err := DecodePayload([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidPayload, name)
	}

	p, err := DecodePayload([]byte("nonce: \"000000000000000000000000\"\nciphertext: abcd\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSuite, p.Suite)
}

func TestDefaultPayload(t *testing.T) {
	p := DefaultPayload()
	assert.Equal(t, SuiteAES256GCM, p.Suite)
	assert.Len(t, p.Nonce, NonceSize)
	assert.NotEmpty(t, p.Ciphertext)

	_, err := Authorize(testKey(), p)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestLoadPayloadMissingFile(t *testing.T) {
	_, err := LoadPayload(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
