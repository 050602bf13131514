package redis

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func formatSeedPairKey(username string) string {
	return fmt.Sprintf("fairness:%s:seeds", username)
}

func formatActiveGameKey(username string) string {
	return fmt.Sprintf("blackjack:%s:active", username)
}
