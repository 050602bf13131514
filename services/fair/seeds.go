package fair

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

/*
 * 'SeedPair' is a user's current fairness seeds. The server seed stays
 * secret until the pair is rotated; only its commitment is disclosed while
 * rounds are still being played against it. Nonce counts the rounds played
 * with this pair and is bumped once per round.
 */
type SeedPair struct {
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          uint64 `json:"nonce"`
}

// NewSeedPair generates a fresh server seed with the given client seed.
// An empty client seed gets a random one so a round can never be derived
// from the server seed alone.
func NewSeedPair(clientSeed string) (*SeedPair, error) {
	serverSeed, err := randomSeed()
	if err != nil {
		return nil, err
	}
	if clientSeed == "" {
		if clientSeed, err = randomSeed(); err != nil {
			return nil, err
		}
	}
	return &SeedPair{
		ServerSeed:     serverSeed,
		ServerSeedHash: HashCommitment(serverSeed),
		ClientSeed:     clientSeed,
		Nonce:          0,
	}, nil
}

func randomSeed() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
