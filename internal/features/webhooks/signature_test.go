package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sign_ProducesPrefixedHexDigest(t *testing.T) {
	signature := Sign("topsecret", []byte(`{"event":"task.created"}`))

	require.True(t, strings.HasPrefix(signature, "sha256="))

	digest := strings.TrimPrefix(signature, "sha256=")
	assert.Len(t, digest, 64)
	_, err := hex.DecodeString(digest)
	assert.NoError(t, err)
}

func Test_Sign_MatchesReferenceHMAC(t *testing.T) {
	secret := "topsecret"
	body := []byte(`{"event":"task.created"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, Sign(secret, body))
}

func Test_Verify_AcceptsSignatureProducedBySign(t *testing.T) {
	secret := "topsecret"
	body := []byte(`{"event":"task.updated","data":{"id":"42"}}`)

	assert.True(t, Verify(secret, body, Sign(secret, body)))
}

func Test_Verify_RejectsTamperedBody(t *testing.T) {
	secret := "topsecret"
	signature := Sign(secret, []byte(`{"amount":10}`))

	assert.False(t, Verify(secret, []byte(`{"amount":10000}`), signature))
}

func Test_Verify_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{"event":"task.deleted"}`)
	signature := Sign("topsecret", body)

	assert.False(t, Verify("othersecret", body, signature))
}

func Test_Verify_RejectsMalformedSignature(t *testing.T) {
	assert.False(t, Verify("topsecret", []byte("body"), ""))
	assert.False(t, Verify("topsecret", []byte("body"), "sha256=nothex"))
}
