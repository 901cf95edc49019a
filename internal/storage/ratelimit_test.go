package storage

import (
	"sync"
	"testing"
	"time"
)

func TestRequestLimitWindow(t *testing.T) {
	db := newTestDB(t)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < limitCap; i++ {
		ok, err := db.checkRequestLimit(77, start.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("check %d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}

	// 16th inside the same window
	ok, err := db.checkRequestLimit(77, start.Add(30*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("request over the cap allowed, want denied")
	}

	// denial must not mutate: still denied a moment later
	ok, err = db.checkRequestLimit(77, start.Add(31*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("request over the cap allowed after a denied one")
	}

	// window rolls over, counter resets to 1
	ok, err = db.checkRequestLimit(77, start.Add(61*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("request after rollover denied, want allowed")
	}

	var count int
	var winStart int64
	if err := db.QueryRow(
		`SELECT count, window_start FROM request_limits WHERE user_id=?`, int64(77),
	).Scan(&count, &winStart); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count after rollover = %d, want 1", count)
	}
	if winStart != start.Add(61*time.Second).Unix() {
		t.Errorf("window_start not advanced: %d", winStart)
	}
}

func TestRequestLimitPerUser(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	for i := 0; i < limitCap; i++ {
		if ok, err := db.checkRequestLimit(1, now); err != nil || !ok {
			t.Fatalf("user 1 request %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	if ok, _ := db.checkRequestLimit(1, now); ok {
		t.Error("user 1 over the cap allowed")
	}

	// an unrelated user is unaffected
	if ok, err := db.checkRequestLimit(2, now); err != nil || !ok {
		t.Errorf("user 2 first request: ok=%v err=%v", ok, err)
	}
}

// Concurrent checks for one user must serialize on the write lock instead of
// erroring, and allow exactly the cap.
func TestRequestLimitConcurrent(t *testing.T) {
	db := newTestDB(t)

	const checks = 30
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < checks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := db.CheckRequestLimit(42)
			if err != nil {
				t.Errorf("CheckRequestLimit: %v", err)
				return
			}
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limitCap {
		t.Errorf("allowed = %d, want %d", allowed, limitCap)
	}
}
