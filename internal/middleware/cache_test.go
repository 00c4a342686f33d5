package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"total_checkouts_today":3}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}

	status, gotHdr, gotBody, ok := decodePayload(encoded)
	if !ok {
		t.Fatal("decodePayload rejected valid payload")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Fatalf("Content-Type = %q", got)
	}
	if !bytes.Equal(gotBody, body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, []byte("not a payload"), make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Fatalf("decodePayload accepted %v", bs)
		}
	}
	// A header length pointing past the buffer must be rejected.
	bad := make([]byte, 12)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Fatal("decodePayload accepted oversized header length")
	}
}
