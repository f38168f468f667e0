package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign(t *testing.T) {
	body := []byte(`{"transaction_id":"tx-1"}`)

	t.Run("Deterministic", func(t *testing.T) {
		sig1, simple1 := Sign(body, 1700000000000, "secret")
		sig2, simple2 := Sign(body, 1700000000000, "secret")

		assert.Equal(t, sig1, sig2)
		assert.Equal(t, simple1, simple2)
	})

	t.Run("Signatures Differ", func(t *testing.T) {
		sig, simple := Sign(body, 1700000000000, "secret")

		assert.NotEqual(t, sig, simple)
		assert.Len(t, sig, 64)
		assert.Len(t, simple, 64)
	})

	t.Run("Known Vector", func(t *testing.T) {
		_, simple := Sign(nil, 1700000000000, "secret")
		sig, _ := Sign([]byte("1700000000000"), 0, "secret")

		assert.NotEqual(t, simple, sig)
		assert.Equal(t, hmacHex([]byte("1700000000000"), "secret"), simple)
		assert.Equal(t, hmacHex([]byte("1700000000000.0"), "secret"), sig)
	})

	t.Run("Timestamp And Secret Matter", func(t *testing.T) {
		sig, _ := Sign(body, 1, "secret")
		otherTs, _ := Sign(body, 2, "secret")
		otherSecret, _ := Sign(body, 1, "other")

		assert.NotEqual(t, sig, otherTs)
		assert.NotEqual(t, sig, otherSecret)
	})
}

func TestVerify(t *testing.T) {
	body := []byte(`{"transaction_id":"tx-1"}`)
	sig, simple := Sign(body, 42, "secret")

	assert.True(t, Verify(body, 42, "secret", sig))
	assert.False(t, Verify(body, 43, "secret", sig))
	assert.False(t, Verify([]byte(`{}`), 42, "secret", sig))
	assert.True(t, VerifySimple(42, "secret", simple))
	assert.False(t, VerifySimple(42, "wrong", simple))
}
