package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxClaimAttempts = 3
	discardTimeout   = time.Second
)

// claimKey sets key to value unless it already points at a live record.
// A claim whose record is gone is taken over. When the key is held by a
// live record, its current value is returned with claimed == false.
func (s *RedisStorage) claimKey(
	ctx context.Context,
	key string,
	value any,
	isLive func(tx *redis.Tx, current string) (bool, error),
) (current string, claimed bool, err error) {
	for i := 0; i < maxClaimAttempts; i++ {
		ok, err := s.client.SetNX(ctx, key, value, 0).Result()
		if err != nil {
			return "", false, err
		}
		if ok {
			return "", true, nil
		}

		var live, vanished bool
		err = s.client.Watch(ctx, func(tx *redis.Tx) error {
			cur, err := tx.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				vanished = true
				return nil
			}
			if err != nil {
				return err
			}
			current = cur

			live, err = isLive(tx, cur)
			if err != nil || live {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, value, 0)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) || (err == nil && vanished) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		if live {
			return current, false, nil
		}

		log.Printf("WARN: replaced dangling claim, key=%s, old=%s\n", key, current)
		return "", true, nil
	}
	return "", false, fmt.Errorf("key %s changed during %d claim attempts", key, maxClaimAttempts)
}

// discard removes records written ahead of a claim that did not happen.
// It runs even when ctx is already done.
func (s *RedisStorage) discard(ctx context.Context, keys ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), discardTimeout)
	defer cancel()

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("WARN: failed to discard unclaimed records, keys=%v, err=%v\n", keys, err)
	}
}
