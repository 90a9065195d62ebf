/*
 * RP2040 - timer interrupts
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

// Check interrupt mask has at least one alarm bit and nothing else.
func validMask(mask uint32) bool {
	return mask != 0 && (mask&^reg.AlarmMask) == 0
}

// Enable interrupts for the alarms in mask, other bits are left alone.
func (t *Timer) EnableInterrupts(mask uint32) error {
	if t.state != Initialized {
		return ErrModuleUninit
	}
	if !validMask(mask) {
		return ErrInvalidParam
	}
	t.debugf(debugIrq, "enable %x", mask)
	t.store(reg.INTE, t.load(reg.INTE)|mask)
	return nil
}

// Disable interrupts for the alarms in mask, other bits are left alone.
func (t *Timer) DisableInterrupts(mask uint32) error {
	if t.state != Initialized {
		return ErrModuleUninit
	}
	if !validMask(mask) {
		return ErrInvalidParam
	}
	t.debugf(debugIrq, "disable %x", mask)
	t.store(reg.INTE, t.load(reg.INTE)&^mask)
	return nil
}

// Force interrupt for alarm n.
func (t *Timer) ForceTrigger(n uint8) error {
	if !validAlarm(n) {
		return ErrInvalidParam
	}
	t.debugf(debugIrq, "force %d", n)
	t.store(reg.INTF, t.load(reg.INTF)|reg.AlarmBit(n))
	return nil
}

// Return Triggered if interrupt status for alarm n is set.
func (t *Timer) CheckInterruptStatus(n uint8) AlarmStatus {
	if !validAlarm(n) {
		return Failed
	}
	if (t.load(reg.INTS) & reg.AlarmBit(n)) != 0 {
		return Triggered
	}
	return NotSet
}

// Acknowledge interrupt for alarm n, INTR is write 1 to clear.
func (t *Timer) ClearInterrupt(n uint8) error {
	if !validAlarm(n) {
		return ErrInvalidParam
	}
	t.debugf(debugIrq, "clear %d", n)
	t.store(reg.INTR, t.load(reg.INTR)|reg.AlarmBit(n))
	return nil
}

// Acknowledge only the interrupt for alarm n. Unlike ClearInterrupt the
// other pending bits are not written back.
func (t *Timer) AckInterrupt(n uint8) error {
	if !validAlarm(n) {
		return ErrInvalidParam
	}
	t.debugf(debugIrq, "ack %d", n)
	t.store(reg.INTR, reg.AlarmBit(n))
	return nil
}
