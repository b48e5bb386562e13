package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// durationSeconds is a duration read from the environment as "10s", "5m"
// or a bare number of seconds. Surrounding quotes left in by .env files are dropped.
type durationSeconds time.Duration

// SetValue implements cleanenv.Setter.
func (d *durationSeconds) SetValue(data string) error {
	s := strings.Trim(strings.TrimSpace(data), `"'`)
	if s == "" {
		return fmt.Errorf("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = durationSeconds(time.Duration(n) * time.Second)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	*d = durationSeconds(v)
	return nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

// applyRedisURL replaces the address parts of rc with those of rc.URL.
// rediss:// turns TLS on.
func applyRedisURL(rc *RedisConfig) error {
	opts, err := redis.ParseURL(strings.TrimSpace(rc.URL))
	if err != nil {
		return err
	}
	rc.Addr = opts.Addr
	rc.Password = opts.Password
	rc.DB = opts.DB
	rc.TLS = opts.TLSConfig != nil
	return nil
}
