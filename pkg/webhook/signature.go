package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Sign returns the full signature over "<body>.<timestamp>" and the simple
// signature over the timestamp alone, both hex-encoded HMAC-SHA256.
func Sign(body []byte, timestamp int64, secret string) (signature, simpleSignature string) {
	ts := strconv.FormatInt(timestamp, 10)

	signed := make([]byte, 0, len(body)+1+len(ts))
	signed = append(signed, body...)
	signed = append(signed, '.')
	signed = append(signed, ts...)

	return hmacHex(signed, secret), hmacHex([]byte(ts), secret)
}

// Verify checks a received full signature in constant time. Receivers pass
// the raw request body and the X-Kushki-Id header value.
func Verify(body []byte, timestamp int64, secret, signature string) bool {
	expected, _ := Sign(body, timestamp, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifySimple checks a received timestamp-only signature in constant time.
func VerifySimple(timestamp int64, secret, simpleSignature string) bool {
	_, expected := Sign(nil, timestamp, secret)
	return hmac.Equal([]byte(expected), []byte(simpleSignature))
}

func hmacHex(data []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
