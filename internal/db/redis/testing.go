package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an existing rueidis client, bypassing dialing.
// Test use only.
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c}
}
