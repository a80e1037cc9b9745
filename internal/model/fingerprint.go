package model

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

// Fingerprint hashes the canonical JSON encoding of a turn state.
// Ledgers encode in sorted order, so equal states hash equally.
func Fingerprint(state *CurrentTurnState) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
