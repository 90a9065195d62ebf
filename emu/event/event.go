/*
 * RP2040 - Timed event list
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

package event

// Callback is run when an event reaches its time.
type Callback = func(iarg int)

type Event struct {
	time  int64    // Number of ticks after previous event.
	owner any      // Who event is registered too.
	cb    Callback // Function to callback.
	iarg  int      // Integer argument.
	prev  *Event
	next  *Event
}

// List holds events in time order. Each event time is relative to the
// event before it.
type List struct {
	head *Event
	tail *Event
}

// Add an event, time is in ticks from now.
func (el *List) Add(owner any, cb Callback, time int64, iarg int) {
	// If time is 0 process event immediately
	if time <= 0 {
		cb(iarg)
		return
	}

	ev := &Event{owner: owner, cb: cb, time: time, iarg: iarg}

	evptr := el.head
	// If empty put on head
	if evptr == nil {
		el.head = ev
		el.tail = ev
		return
	}

	// Scan for place to install it
	for evptr != nil {
		// Event before next event
		if ev.time <= evptr.time {
			// Remove current time from next time
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return
		}
		// Make new event relative to head of list
		ev.time -= evptr.time
		evptr = evptr.next
	}

	// Get here, put it on tail of list
	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
}

// Remove event for owner with argument iarg.
func (el *List) Cancel(owner any, iarg int) bool {
	for evptr := el.head; evptr != nil; evptr = evptr.next {
		if evptr.owner != owner || evptr.iarg != iarg {
			continue
		}
		nxt := evptr.next
		// If next event give time to next event
		if nxt != nil {
			nxt.time += evptr.time
			nxt.prev = evptr.prev
		} else {
			// No next event, point tail to prev
			el.tail = evptr.prev
		}

		// Point previous event next to next
		if evptr.prev != nil {
			evptr.prev.next = nxt
		} else {
			el.head = nxt
		}
		return true
	}
	return false
}

// Advance time by t ticks, running any events that come due.
func (el *List) Advance(t int64) {
	for el.head != nil {
		evptr := el.head
		if evptr.time > t {
			evptr.time -= t
			return
		}
		// Time left over goes to following events.
		t -= evptr.time
		el.head = evptr.next
		if el.head != nil {
			el.head.prev = nil
		} else {
			el.tail = nil
		}
		evptr.cb(evptr.iarg)
	}
}

// Return true if any events pending.
func (el *List) Any() bool {
	return el.head != nil
}

// Return ticks until next event.
func (el *List) Next() (int64, bool) {
	if el.head == nil {
		return 0, false
	}
	return el.head.time, true
}

// Remove all events.
func (el *List) Clear() {
	el.head = nil
	el.tail = nil
}
