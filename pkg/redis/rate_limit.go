package redis

import (
	"context"
	"fmt"
	"time"

	rd "github.com/redis/go-redis/v9"
)

// Sliding-window limiter: prune entries older than the window, count what is
// left, and admit the request only below the limit. All four steps run inside
// one Lua script so concurrent checkouts cannot race past the limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// Allow reports whether one more request fits in the key's window.
func Allow(ctx context.Context, rdb *rd.Client, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().Unix()
	windowSec := int64(window.Seconds())
	windowStart := now - windowSec
	member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

	res, err := rdb.Eval(ctx, luaRateLimit, []string{key},
		now, windowStart, windowSec, member, limit).Int()
	if err != nil {
		return false, err
	}
	return res >= 0, nil
}
