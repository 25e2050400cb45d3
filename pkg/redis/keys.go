package redis

import "fmt"

// RateLimitUserKey scopes the checkout limiter to one account.
func RateLimitUserKey(userID string) string {
	return fmt.Sprintf("ethioconnect:rate_limit:user:%s", userID)
}

// RateLimitIPKey is the fallback scope when no account is known.
func RateLimitIPKey(ip string) string {
	return fmt.Sprintf("ethioconnect:rate_limit:ip:%s", ip)
}
