package common

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedisClient connects to the redis instance described by connString.
// An empty connString means redis is disabled and returns a nil client.
func InitRedisClient(connString string) (*redis.Client, error) {
	if connString == "" {
		SysLog("REDIS_CONN_STRING not set, Redis is not enabled")
		return nil, nil
	}
	SysLog("Redis is enabled")
	opt, err := redis.ParseURL(connString)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
