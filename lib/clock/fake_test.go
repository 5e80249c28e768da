// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	c := Fake(epoch)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}
	c.Advance(time.Minute)
	if !c.Now().Equal(epoch.Add(time.Minute)) {
		t.Fatalf("Now() after Advance = %v", c.Now())
	}
}

func TestFakeClockAfterFiresOnAdvance(t *testing.T) {
	c := Fake(epoch)
	channel := c.After(5 * time.Second)

	c.Advance(4 * time.Second)
	select {
	case <-channel:
		t.Fatal("fired before the deadline")
	default:
	}

	c.Advance(time.Second)
	select {
	case fired := <-channel:
		if !fired.Equal(epoch.Add(5 * time.Second)) {
			t.Errorf("fired at %v", fired)
		}
	default:
		t.Fatal("did not fire at the deadline")
	}
	if c.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d after firing", c.PendingCount())
	}
}

func TestFakeClockAfterZeroDuration(t *testing.T) {
	c := Fake(epoch)
	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) should fire immediately")
	}
	if c.PendingCount() != 0 {
		t.Error("After(0) registered a waiter")
	}
}

func TestFakeClockWaitForTimers(t *testing.T) {
	c := Fake(epoch)
	registered := make(chan struct{})
	go func() {
		c.WaitForTimers(1)
		close(registered)
	}()

	c.After(time.Second)
	<-registered
}

func TestFakeClockImplementsClock(t *testing.T) {
	var _ Clock = Fake(epoch)
	var _ Clock = Real()
}
