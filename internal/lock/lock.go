package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CampaignLock serializes scheduling runs for one campaign across server
// instances. Scheduling counters are invocation-local, so two concurrent
// runs for the same campaign could jointly overshoot the daily cap; the
// lock keeps one run in flight per campaign at a time.
//
// Backed by Redis SET NX with a TTL. Release is a Lua compare-and-delete
// so an expired lock taken over by another run is never released by us.
type CampaignLock struct {
	client *redis.Client
	key    string
	token  string
	ttl    time.Duration
}

func NewCampaignLock(client *redis.Client, campaignID int, ttl time.Duration) *CampaignLock {
	b := make([]byte, 16)
	rand.Read(b)
	return &CampaignLock{
		client: client,
		key:    fmt.Sprintf("lock:campaign:%d:schedule", campaignID),
		token:  hex.EncodeToString(b),
		ttl:    ttl,
	}
}

// Acquire tries to take the lock, returning false if another run holds it.
func (l *CampaignLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire %s: %w", l.key, err)
	}
	return ok, nil
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Release drops the lock if we still own it.
func (l *CampaignLock) Release(ctx context.Context) error {
	_, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Result()
	return err
}
