package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis only counts rate-limit hits here, and the limiter fails open, so a
// slow server should cost a request milliseconds rather than seconds.
const (
	dialTimeout = time.Second
	ioTimeout   = 300 * time.Millisecond
	pingTimeout = 2 * time.Second
)

type Client struct {
	addr string
	rdb  *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{
		addr: addr,
		rdb: goredis.NewClient(&goredis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  dialTimeout,
			ReadTimeout:  ioTimeout,
			WriteTimeout: ioTimeout,
			MaxRetries:   1,
		}),
	}
}

func (c *Client) Addr() string { return c.addr }

// Ping is bounded by pingTimeout even when ctx has no deadline.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", c.addr, err)
	}
	return nil
}

// Limiter returns a fixed-window limiter sharing this client's pool.
func (c *Client) Limiter() *FixedWindowLimiter {
	return NewFixedWindowLimiter(c)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
