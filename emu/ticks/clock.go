/*
 * RP2040 - Wall clock for timer ticks
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package ticks

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/RP2040/emu/master"
)

// Default interval between clock packets.
const DefaultInterval = time.Millisecond

type Clock struct {
	wg       sync.WaitGroup
	running  bool // Indicate when clock should post ticks.
	master   chan master.Packet
	interval time.Duration
	enable   chan bool     // Enable or disable clock.
	done     chan struct{} // Stop clock task.
	ticker   *time.Ticker  // Regular clock interval.
}

// Create instance of clock. Each interval posts the number of
// microseconds in the interval on the master channel.
func NewClock(masterChannel chan master.Packet, interval time.Duration) *Clock {
	if interval < time.Microsecond {
		interval = DefaultInterval
	}
	clock := &Clock{
		master:   masterChannel,
		interval: interval,
		running:  false,
		enable:   make(chan bool, 1),
		done:     make(chan struct{}),
	}
	clock.wg.Add(1)
	go clock.run()
	return clock
}

// Start delivering ticks.
func (clock *Clock) Start() {
	clock.enable <- true
}

// Stop delivering ticks.
func (clock *Clock) Stop() {
	clock.enable <- false
}

// Return interval between packets.
func (clock *Clock) Interval() time.Duration {
	return clock.interval
}

// Shutdown clock routine.
func (clock *Clock) Shutdown() {
	close(clock.done)
	done := make(chan struct{})
	go func() {
		clock.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for clock to finish.")
		return
	}
}

// Clock routine to send tick counts on master channel.
func (clock *Clock) run() {
	defer clock.wg.Done()
	clock.ticker = time.NewTicker(clock.interval)
	defer clock.ticker.Stop()
	count := uint64(clock.interval / time.Microsecond)

	for {
		select {
		case <-clock.ticker.C:
			if clock.running {
				select {
				case clock.master <- master.Packet{Msg: master.TimeClock, Count: count}:
				case <-clock.done:
					return
				}
			}
		case clock.running = <-clock.enable:
			if clock.running {
				clock.ticker.Reset(clock.interval)
			}
		case <-clock.done:
			return
		}
	}
}
