package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// 指向一个必然连不上的地址, SetNX 一定报错,
// 以此验证零重试时也会真正发起一次抢锁而不是直接放弃
func TestTryLockAttemptsAtLeastOnce(t *testing.T) {
	old := Rdb
	defer func() { Rdb = old }()
	Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 20 * time.Millisecond,
		MaxRetries:  -1,
	})

	ok, err := TryLock(context.Background(), "lock:test", "v", time.Minute, 0)
	require.Error(t, err)
	require.False(t, ok)

	ok, err = TryLock(context.Background(), "lock:test", "v", time.Minute, 2)
	require.Error(t, err)
	require.False(t, ok)
}
