// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for the change
// watcher's debounce timer.
//
// Production code uses Real(). Tests use Fake(), whose time advances
// only when Advance is called:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	w, _ := watch.New(dirs, watch.Options{Clock: c})
//	// ... write a file ...
//	c.WaitForTimers(1)                  // the watcher armed its debounce
//	c.Advance(watch.DefaultDebounce)    // fire it deterministically
//
// WaitForTimers closes the race between a goroutine registering a
// timer and the test advancing the clock.
package clock
