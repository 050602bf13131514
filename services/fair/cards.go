package fair

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// Suit of a playing card. Index order (hearts, diamonds, clubs, spades)
// is fixed and part of the fairness contract.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Rank of a playing card. Index order (A,2..10,J,Q,K) is fixed and part
// of the fairness contract.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

/*
 * 'Card' is one derived playing card. Value is the blackjack value of the
 * rank (A=11, face=10, otherwise numeric) and must always match Rank.
 */
type Card struct {
	Suit  Suit `json:"suit"`
	Rank  Rank `json:"rank"`
	Value int  `json:"value"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// IsRed reports whether the card's suit is hearts or diamonds.
func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// Validate rejects malformed cards: unknown suit or rank, or a value that
// does not match the rank.
func (c Card) Validate() error {
	switch c.Suit {
	case Hearts, Diamonds, Clubs, Spades:
	default:
		return fmt.Errorf("invalid card suit %q", c.Suit)
	}
	expected, ok := rankValue(c.Rank)
	if !ok {
		return fmt.Errorf("invalid card rank %q", c.Rank)
	}
	if c.Value != expected {
		return fmt.Errorf("card value %d does not match rank %s", c.Value, c.Rank)
	}
	return nil
}

func rankValue(r Rank) (int, bool) {
	switch r {
	case Ace:
		return 11, true
	case Jack, Queen, King, Ten:
		return 10, true
	default:
		v, err := strconv.Atoi(string(r))
		if err != nil || v < 2 || v > 9 {
			return 0, false
		}
		return v, true
	}
}

// RankOrder returns the position of the rank in the fixed A,2..10,J,Q,K
// order, 1-based (A=1 ... K=13). Used by the 21+3 straight check.
func RankOrder(r Rank) int {
	for i, rr := range ranks {
		if rr == r {
			return i + 1
		}
	}
	return 0
}

// DeriveCard derives one card from (serverSeed, clientSeed, nonce, cursor).
// It is pure: identical inputs always produce the identical card, for any
// non-negative cursor (unlimited deck, no shuffling state).
//
// The digest is HMAC-SHA512 over "clientSeed:nonce:cursor" keyed by the
// server seed. The first 8 hex digits are parsed as an unsigned integer,
// normalized by the maximum 32-bit value and mapped onto the 52-card deck.
func DeriveCard(serverSeed, clientSeed string, nonce uint64, cursor int) Card {
	mac := hmac.New(sha512.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s:%d:%d", clientSeed, nonce, cursor)
	digest := hex.EncodeToString(mac.Sum(nil))

	// ParseUint cannot fail on 8 hex digits of a hex string.
	n, _ := strconv.ParseUint(digest[:8], 16, 64)
	f := float64(n) / float64(math.MaxUint32)

	index := int(math.Floor(f * 52))
	// n == MaxUint32 normalizes to exactly 1.0; keep the index on the deck.
	if index > 51 {
		index = 51
	}
	if index < 0 {
		index = 0
	}

	rank := ranks[index%13]
	value, _ := rankValue(rank)
	return Card{
		Suit:  suits[index/13],
		Rank:  rank,
		Value: value,
	}
}

// VerifyCard re-derives the card for the given inputs and compares it with
// the claimed card. Used for post-hoc fairness audits; it shares the exact
// derivation path with DeriveCard so verification is exact.
func VerifyCard(serverSeed, clientSeed string, nonce uint64, cursor int, claimed Card) bool {
	return DeriveCard(serverSeed, clientSeed, nonce, cursor) == claimed
}

// HashCommitment returns the SHA-256 hex commitment of the server seed.
// Published before a round starts so the player can later verify the seed
// was not altered.
func HashCommitment(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}
