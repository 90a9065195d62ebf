/*
 * RP2040 - timer counter access
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

package timer

import (
	reg "github.com/rcornwell/RP2040/emu/register"
)

// The counter is reached through pairs of registers, low word first.
type counterPort struct {
	low  reg.Cell
	high reg.Cell
}

// Register file view that goes through the driver trace.
type tracedFile struct {
	t *Timer
}

func (f tracedFile) Load(offset uint32) uint32 {
	return f.t.load(offset)
}

func (f tracedFile) Store(offset uint32, value uint32) {
	f.t.store(offset, value)
}

func (t *Timer) port(low uint32, high uint32) counterPort {
	file := tracedFile{t: t}
	return counterPort{low: reg.CellOf(file, low), high: reg.CellOf(file, high)}
}

// Set the pause bit and check that it took.
func (t *Timer) setPause(value uint32) error {
	t.store(reg.PAUSE, value)
	if (t.load(reg.PAUSE) & reg.PauseMask) != value {
		t.debugf(debugCounter, "pause did not settle to %d", value)
		return ErrNotOK
	}
	return nil
}

// Stop the counter.
func (t *Timer) Pause() error {
	t.debugf(debugCounter, "pause")
	return t.setPause(reg.PauseSet)
}

// Restart the counter.
func (t *Timer) Unpause() error {
	t.debugf(debugCounter, "unpause")
	return t.setPause(reg.PauseClr)
}

// Read bits 31:0 of the counter. This latches the upper half for
// ReadHigh.
func (t *Timer) ReadLow(low *uint32) error {
	if t.state != Initialized {
		return ErrModuleUninit
	}
	if low == nil {
		return ErrInvalidParam
	}
	*low = t.readPort.low.Load()
	return nil
}

// Read bits 63:32 of the counter as latched by the last ReadLow.
func (t *Timer) ReadHigh(high *uint32) error {
	if t.state != Initialized {
		return ErrModuleUninit
	}
	if high == nil {
		return ErrInvalidParam
	}
	*high = t.readPort.high.Load()
	return nil
}

// Stage bits 31:0 of the counter, nothing changes until WriteHigh.
func (t *Timer) WriteLow(low uint32) error {
	t.writePort.low.Store(low)
	return nil
}

// Write bits 63:32 of the counter, committing the staged low half.
func (t *Timer) WriteHigh(high uint32) error {
	t.writePort.high.Store(high)
	return nil
}

// Read the 64 bit counter. The low half is read first so the high half
// comes from the same latch. The pair may still not be one instant of
// the counter.
func (t *Timer) Read64(high *uint32, low *uint32) error {
	if high == nil || low == nil {
		return ErrInvalidParam
	}
	err := merge(t.ReadLow(low), t.ReadHigh(high))
	t.debugf(debugCounter, "read %08x %08x", *high, *low)
	return err
}

// Load the 64 bit counter. Low must be written before high.
func (t *Timer) Write64(high *uint32, low *uint32) error {
	if high == nil || low == nil {
		return ErrInvalidParam
	}
	t.debugf(debugCounter, "write %08x %08x", *high, *low)
	return merge(t.WriteLow(*low), t.WriteHigh(*high))
}

// Read bits 31:0 of the counter without latching anything.
func (t *Timer) ReadRaw32(low *uint32) error {
	if low == nil {
		return ErrInvalidParam
	}
	*low = t.rawPort.low.Load()
	return nil
}

// Return the counter as one value.
func (t *Timer) Now() (uint64, error) {
	var high, low uint32
	if err := t.Read64(&high, &low); err != nil {
		return 0, err
	}
	return (uint64(high) << 32) | uint64(low), nil
}

// Return the counter from the raw registers. Nothing is latched, so the
// halves can tear if the low word wraps between the reads.
func (t *Timer) ReadRaw64() uint64 {
	low := t.rawPort.low.Load()
	high := t.rawPort.high.Load()
	return (uint64(high) << 32) | uint64(low)
}

// Read any register without driver checks, for diagnostics.
func (t *Timer) Register(offset uint32) uint32 {
	return t.load(offset)
}
