package test

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexString decodes a hex string without returning an error value,
// which makes it usable inline in test tables. Invalid input panics.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}
