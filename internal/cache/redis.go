package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// NewRedis connects to url. An empty url disables redis and returns nil;
// every consumer treats a nil client as "no cache".
func NewRedis(ctx context.Context, url string, log logrus.FieldLogger) (*redis.Client, error) {
	if url == "" {
		log.Warn("REDIS_URL not set, identity cache and rate limiting disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.WithField("addr", opt.Addr).Info("redis connected")
	return rdb, nil
}
