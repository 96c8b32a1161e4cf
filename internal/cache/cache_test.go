// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("missing key reported present")
	}

	c.Set("dashboard:u1", 42)
	got, ok := c.Get("dashboard:u1")
	if !ok {
		t.Fatal("set key not found")
	}
	if got.(int) != 42 {
		t.Errorf("value = %v, want 42", got)
	}
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry still served")
	}

	stats := c.GetStats()
	if stats.Evictions == 0 {
		t.Error("expired access not counted as eviction")
	}
}

func TestDeletePrefix(t *testing.T) {
	c := New(time.Minute)

	c.Set("dashboard:u1", 1)
	c.Set("stats:u1:day", 2)
	c.Set("dashboard:u2", 3)

	c.DeletePrefix("dashboard:u1")

	if _, ok := c.Get("dashboard:u1"); ok {
		t.Error("prefixed key survived DeletePrefix")
	}
	if _, ok := c.Get("stats:u1:day"); !ok {
		t.Error("unrelated key removed")
	}
	if _, ok := c.Get("dashboard:u2"); !ok {
		t.Error("other user's key removed")
	}
}

func TestClearAndStats(t *testing.T) {
	c := New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Get("nope")

	c.Clear()

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys after clear = %d, want 0", stats.TotalKeys)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.Hits, stats.Misses)
	}
	if rate := c.HitRate(); rate != 50.0 {
		t.Errorf("HitRate = %.1f, want 50.0", rate)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key:%d:%d", n, j%10)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		UserID string
		Days   int
	}

	a := GenerateKey("stats", params{"u1", 30})
	b := GenerateKey("stats", params{"u1", 30})
	other := GenerateKey("stats", params{"u1", 7})

	if a != b {
		t.Errorf("same params produced different keys: %s vs %s", a, b)
	}
	if a == other {
		t.Error("different params produced the same key")
	}
}
