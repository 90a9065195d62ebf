/*
 * RP2040 - timer peripheral model
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

/*
   Register level model of the RP2040 timer block. The model implements
   register.File so the driver can run against it the same way it runs
   against the hardware window.

   Time only moves when Advance is called, one tick per microsecond of
   the watchdog reference. Alarms are kept on an event list so Advance
   can step straight from one match to the next.
*/

package rp2040

import (
	"errors"
	"sync"

	"github.com/rcornwell/RP2040/emu/event"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/ticks"
	"github.com/rcornwell/RP2040/util/debug"
)

const (
	// Debug options.
	debugReg = 1 << iota
	debugAlarm
	debugIrq
)

var debugOption = map[string]int{
	"REG":   debugReg,
	"ALARM": debugAlarm,
	"IRQ":   debugIrq,
}

// DBGPAUSE bits, pause while core 0 or core 1 is halted in debug.
const (
	DbgPauseMask  uint32 = 0x6
	DbgPauseReset uint32 = 0x7 & DbgPauseMask
)

// Distance to a match when the alarm equals the current low word.
const fullWrap = int64(1) << 32

type Timer struct {
	mu        sync.Mutex
	time      uint64            // Current counter.
	stagedLow uint32            // Low half written to TIMELW.
	latchHigh uint32            // High half latched by TIMELR read.
	alarm     [reg.NumAlarms]uint32
	armed     uint32
	dbgPause  uint32
	pause     uint32
	intr      uint32
	inte      uint32
	intf      uint32
	debugHalt bool         // Processor halted in debugger.
	events    event.List   // Pending alarm matches.
	ticks     ticks.Source // Tick reference.
	line      bool         // Current state of interrupt line.
	handler   func(bool)   // Called when interrupt line changes.
	debugMsk  int
}

// Create a timer model counting ticks from src.
func New(src ticks.Source) *Timer {
	m := &Timer{ticks: src}
	m.reset()
	return m
}

// Put model into reset state.
func (m *Timer) reset() {
	m.time = 0
	m.stagedLow = 0
	m.latchHigh = 0
	m.alarm = [reg.NumAlarms]uint32{}
	m.armed = 0
	m.dbgPause = DbgPauseReset
	m.pause = 0
	m.intr = 0
	m.inte = 0
	m.intf = 0
	m.events.Clear()
}

// Reset the timer block.
func (m *Timer) Reset() {
	m.mu.Lock()
	m.reset()
	m.unlock()
}

// Enable debug options.
func (m *Timer) Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("rp2040 debug option invalid: " + opt)
	}
	m.mu.Lock()
	m.debugMsk |= flag
	m.mu.Unlock()
	return nil
}

func (m *Timer) debugf(level int, format string, a ...interface{}) {
	debug.Debugf("RP2040", m.debugMsk, level, format, a...)
}

// Set function called when the interrupt line changes state.
func (m *Timer) SetIRQHandler(fn func(bool)) {
	m.mu.Lock()
	m.handler = fn
	m.mu.Unlock()
}

// Return state of the timer interrupt line.
func (m *Timer) IRQ() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ints() != 0
}

// Set or clear the processor debug halt, used with DBGPAUSE.
func (m *Timer) SetDebugHalt(halt bool) {
	m.mu.Lock()
	m.debugHalt = halt
	m.mu.Unlock()
}

// Return counter without side effects.
func (m *Timer) Counter() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.time
}

// Masked interrupt status.
func (m *Timer) ints() uint32 {
	return (m.intr | m.intf) & m.inte
}

// Drop lock and report any change on the interrupt line. The handler
// runs without the lock so it may access registers.
func (m *Timer) unlock() {
	line := m.ints() != 0
	changed := line != m.line
	m.line = line
	fn := m.handler
	if changed {
		m.debugf(debugIrq, "irq %t", line)
	}
	m.mu.Unlock()
	if changed && fn != nil {
		fn(line)
	}
}

// Check if counter is stopped.
func (m *Timer) paused() bool {
	if (m.pause & reg.PauseMask) != 0 {
		return true
	}
	if m.debugHalt && (m.dbgPause&DbgPauseMask) != 0 {
		return true
	}
	return m.ticks == nil || !m.ticks.Running()
}

// Schedule match for alarm n against current counter.
func (m *Timer) schedule(n uint8) {
	m.events.Cancel(m, int(n))
	delta := int64(m.alarm[n] - uint32(m.time))
	if delta == 0 {
		delta = fullWrap
	}
	m.events.Add(m, m.match, delta, int(n))
}

// Counter changed under the alarms, rebuild event list.
func (m *Timer) reschedule() {
	m.events.Clear()
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		if (m.armed & reg.AlarmBit(n)) != 0 {
			m.schedule(n)
		}
	}
}

// Alarm n matched the counter.
func (m *Timer) match(iarg int) {
	n := uint8(iarg)
	bit := reg.AlarmBit(n)
	debug.DebugAlarmf(n, m.debugMsk, debugAlarm, "fired at %016x", m.time)
	m.armed &^= bit
	m.alarm[n] = 0
	m.intr |= bit
}

// Advance the counter by up to count ticks. Returns number of ticks
// the counter actually moved, which is less than count if the counter
// is paused or the tick reference is stopped.
func (m *Timer) Advance(count uint64) uint64 {
	m.mu.Lock()
	defer m.unlock()
	if m.paused() {
		return 0
	}
	done := uint64(0)
	for done < count {
		step := count - done
		if next, ok := m.events.Next(); ok && uint64(next) < step {
			step = uint64(next)
		}
		m.time += step
		done += step
		m.events.Advance(int64(step))
	}
	return done
}

// Read a register.
func (m *Timer) Load(offset uint32) uint32 {
	m.mu.Lock()
	defer m.unlock()
	var value uint32
	switch offset {
	case reg.TIMEHR:
		value = m.latchHigh
	case reg.TIMELR:
		m.latchHigh = uint32(m.time >> 32)
		value = uint32(m.time)
	case reg.ALARM0, reg.ALARM1, reg.ALARM2, reg.ALARM3:
		value = m.alarm[(offset-reg.ALARM0)>>2]
	case reg.ARMED:
		value = m.armed
	case reg.TIMERAWH:
		value = uint32(m.time >> 32)
	case reg.TIMERAWL:
		value = uint32(m.time)
	case reg.DBGPAUSE:
		value = m.dbgPause
	case reg.PAUSE:
		value = m.pause
	case reg.INTR:
		value = m.intr
	case reg.INTE:
		value = m.inte
	case reg.INTF:
		value = m.intf
	case reg.INTS:
		value = m.ints()
	default:
		// TIMEHW, TIMELW are write only.
	}
	m.debugf(debugReg, "read %s %08x", reg.Name(offset), value)
	return value
}

// Write a register.
func (m *Timer) Store(offset uint32, value uint32) {
	m.mu.Lock()
	defer m.unlock()
	m.debugf(debugReg, "write %s %08x", reg.Name(offset), value)
	switch offset {
	case reg.TIMELW:
		m.stagedLow = value
	case reg.TIMEHW:
		m.time = (uint64(value) << 32) | uint64(m.stagedLow)
		m.reschedule()
	case reg.ALARM0, reg.ALARM1, reg.ALARM2, reg.ALARM3:
		n := uint8((offset - reg.ALARM0) >> 2)
		bit := reg.AlarmBit(n)
		m.alarm[n] = value
		if value == 0 {
			// Zero compare is treated as disarm.
			m.armed &^= bit
			m.events.Cancel(m, int(n))
			debug.DebugAlarmf(n, m.debugMsk, debugAlarm, "disarmed")
			return
		}
		m.armed |= bit
		m.schedule(n)
		debug.DebugAlarmf(n, m.debugMsk, debugAlarm, "armed at %08x", value)
	case reg.ARMED:
		// Armed bits can only be cleared, a bit written as zero disarms.
		cleared := m.armed &^ value
		m.armed &= value
		for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
			if (cleared & reg.AlarmBit(n)) != 0 {
				m.events.Cancel(m, int(n))
			}
		}
	case reg.DBGPAUSE:
		m.dbgPause = value & DbgPauseMask
	case reg.PAUSE:
		m.pause = value & reg.PauseMask
	case reg.INTR:
		m.intr &^= value & reg.AlarmMask
	case reg.INTE:
		m.inte = value & reg.AlarmMask
	case reg.INTF:
		m.intf = value & reg.AlarmMask
	default:
		// Read only registers ignore writes.
	}
}
