/*
 * RP2040 - timer alarms
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

func validAlarm(n uint8) bool {
	return n < reg.NumAlarms
}

// Arm alarm n to fire when the low 32 bits of the counter reach trigger.
// Zero is not a valid trigger time, a zero compare register means the
// alarm is not armed. Hardware sets the armed bit.
func (t *Timer) Arm(n uint8, trigger uint32) error {
	if !validAlarm(n) || trigger == 0 {
		return ErrInvalidParam
	}
	t.debugf(debugAlarm, "arm %d at %08x", n, trigger)
	t.store(reg.AlarmOffset(n), trigger)
	return nil
}

// Return state of alarm n.
//
// When an alarm fires hardware clears the compare register and sets the
// interrupt status bit. A compare register of zero with no status is
// reported as not set, which also covers an alarm that was disarmed
// before it fired. A nonzero compare with the armed bit clear should not
// happen and is also reported as not set.
func (t *Timer) CheckStatus(n uint8) AlarmStatus {
	if !validAlarm(n) {
		return Failed
	}

	bit := reg.AlarmBit(n)
	status := NotSet
	if t.load(reg.AlarmOffset(n)) == 0 {
		if (t.load(reg.INTS) & bit) != 0 {
			status = Triggered
		}
	} else if (t.load(reg.ARMED) & bit) != 0 {
		status = SetNotTriggered
	}
	t.debugf(debugAlarm, "alarm %d %s", n, status)
	return status
}

// Disarm alarm n. Clears the compare register and the armed bit. The
// armed bit belongs to hardware, clearing it here is only bookkeeping.
//
// The ARMED write assumes a register where a bit written as zero clears.
// RP2040 silicon clears on a one, so there the write disarms every other
// armed alarm instead, and the zero written to ALARMn arms alarm n.
func (t *Timer) Disarm(n uint8) error {
	if !validAlarm(n) {
		return ErrInvalidParam
	}
	t.debugf(debugAlarm, "disarm %d", n)
	t.store(reg.AlarmOffset(n), 0)
	t.store(reg.ARMED, t.load(reg.ARMED)&^reg.AlarmBit(n))
	return nil
}

// Return compare value of alarm n, 0 if not armed or n invalid.
func (t *Timer) AlarmTime(n uint8) uint32 {
	if !validAlarm(n) {
		return 0
	}
	return t.load(reg.AlarmOffset(n))
}
