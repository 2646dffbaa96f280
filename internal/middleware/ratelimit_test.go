package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_AllowUnderLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if !rl.Allow("user:alpha") {
			t.Errorf("request %d should be allowed (limit 3)", i+1)
		}
	}
}

func TestRateLimiter_DenyOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 2, Window: time.Minute})

	rl.Allow("user:alpha")
	rl.Allow("user:alpha")

	if rl.Allow("user:alpha") {
		t.Error("third request should be denied (limit 2)")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})

	if !rl.Allow("user:alpha") {
		t.Error("first request for alpha should be allowed")
	}
	if !rl.Allow("user:beta") {
		t.Error("first request for beta should be allowed despite alpha's usage")
	}
	if rl.Allow("user:alpha") {
		t.Error("second request for alpha should be denied")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: 20 * time.Millisecond})

	if !rl.Allow("user:alpha") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("user:alpha") {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("user:alpha") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestRateLimiter_ManyKeys(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("ip:10.0.0.%d", i)
		if !rl.Allow(key) {
			t.Errorf("first request for %s should be allowed", key)
		}
	}
}
