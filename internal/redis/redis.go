package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Options configures the session-store client. The pool is the only
// in-process state shared between requests, so its size comes from
// deployment configuration rather than a constant.
type Options struct {
	Addr        string
	Password    string
	PoolSize    int
	PingTimeout time.Duration
}

func (o Options) normalize() Options {
	if o.PoolSize <= 0 {
		o.PoolSize = 10
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 2 * time.Second
	}
	return o
}

type Client struct {
	*goredis.Client
}

// New connects a pooled client and verifies the store is reachable
// before anything depends on it.
func New(opts Options) (*Client, error) {
	opts = opts.normalize()

	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       0,
		PoolSize: opts.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{Client: client}, nil
}
