// Copyright (c) 2026 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package redislock keeps a single matchmaking run per pool across instances.
// A run lock is a plain key holding a random token:
//
//	Key:   matchmaker:run-lock:<match pool>
//	Value: <token>
//	TTL:   lock ttl
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AccelByte/extend-elo-matchmaker/pkg/matchmaker"
	"github.com/AccelByte/extend-elo-matchmaker/pkg/utils"
)

var _ matchmaker.Locker = (*Locker)(nil)

// ErrLockLost is returned by Release when the key expired or was taken over.
var ErrLockLost = errors.New("run lock no longer held")

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	client redis.UniversalClient
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client}
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (matchmaker.Lock, bool, error) {
	token := utils.GenerateUUID()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &lock{client: l.client, key: key, token: token}, true, nil
}

type lock struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *lock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("release %s: %w", l.key, ErrLockLost)
	}
	return nil
}
