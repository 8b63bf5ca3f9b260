// Package lorawan builds LoRaWAN 1.0.x data uplinks on top of
// github.com/brocaar/lorawan and records where every MAC field sits in the
// encoded PHYPayload.
package lorawan

import (
	"errors"
	"fmt"

	lw "github.com/brocaar/lorawan"
)

// KeySize is the length of NwkSKey and AppSKey.
const KeySize = 16

var ErrKeySize = errors.New("lorawan: session key must be 16 bytes")

func aesKey(b []byte) (lw.AES128Key, error) {
	var k lw.AES128Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w, got %d", ErrKeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// DecryptPayload reverses the FRMPayload encryption of an uplink. devAddr and
// fCnt are the values the frame was built with.
func DecryptPayload(key []byte, devAddr, fCnt uint32, enc []byte) ([]byte, error) {
	k, err := aesKey(key)
	if err != nil {
		return nil, err
	}
	return lw.EncryptFRMPayload(k, true, devAddrOf(devAddr), fCnt, enc)
}
