/*
 * RP2040 - timer driver
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
   The timer is a 64 bit counter that counts microseconds from the
   watchdog tick generator, plus four alarms that compare against the
   lower 32 bits of the counter. The counter can only be reached through
   pairs of 32 bit registers, so all access goes low word first.

   The driver keeps no copy of the hardware state. Every query goes to
   the registers. The driver does no locking, callers must make sure
   only one context uses a Timer at a time.
*/

package timer

import (
	"errors"
	"log/slog"

	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/util/debug"
)

// Alarm 0 heartbeat set up by Init, 1ms at 1 tick per microsecond.
const DefaultHeartbeat uint32 = 1000

const (
	// Debug options.
	debugCmd = 1 << iota
	debugCounter
	debugAlarm
	debugIrq
	debugReg
)

var debugOption = map[string]int{
	"CMD":     debugCmd,
	"COUNTER": debugCounter,
	"ALARM":   debugAlarm,
	"IRQ":     debugIrq,
	"REG":     debugReg,
}

// State of driver.
type State uint8

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// TickSource reports if the tick reference that drives the counter is
// running.
type TickSource interface {
	Running() bool
}

type Timer struct {
	regs      reg.File     // Timer registers.
	ticks     TickSource   // Tick reference.
	state     State        // Current driver state.
	log       *slog.Logger // Lifecycle messages.
	debugMsk  int          // Debug option mask.
	readPort  counterPort  // Latched read of counter.
	writePort counterPort  // Staged write of counter.
	rawPort   counterPort  // Read without side effects.
}

// Create a driver for the timer registers in regs, counted by ticks.
func New(regs reg.File, ticks TickSource) *Timer {
	t := &Timer{
		regs:  regs,
		ticks: ticks,
		state: Uninitialized,
		log:   slog.Default(),
	}
	t.readPort = t.port(reg.TIMELR, reg.TIMEHR)
	t.writePort = t.port(reg.TIMELW, reg.TIMEHW)
	t.rawPort = t.port(reg.TIMERAWL, reg.TIMERAWH)
	return t
}

// Use logger for lifecycle messages.
func (t *Timer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.log = logger
	}
}

// Return current driver state.
func (t *Timer) State() State {
	return t.state
}

// Return true if Init has completed.
func (t *Timer) Initialized() bool {
	return t.state == Initialized
}

// Enable debug options.
func (t *Timer) Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("timer debug option invalid: " + opt)
	}
	t.debugMsk |= flag
	return nil
}

// Return list of debug option names.
func DebugOptions() []string {
	list := make([]string, 0, len(debugOption))
	for name := range debugOption {
		list = append(list, name)
	}
	return list
}

func (t *Timer) debugf(level int, format string, a ...interface{}) {
	debug.Debugf("TIMER", t.debugMsk, level, format, a...)
}

// Read a register.
func (t *Timer) load(offset uint32) uint32 {
	value := t.regs.Load(offset)
	t.debugf(debugReg, "read %s %08x", reg.Name(offset), value)
	return value
}

// Write a register.
func (t *Timer) store(offset uint32, value uint32) {
	t.debugf(debugReg, "write %s %08x", reg.Name(offset), value)
	t.regs.Store(offset, value)
}

// Initialize the timer. Resets the counter to zero, arms alarm 0 for the
// heartbeat and starts the counter. The tick reference must be running.
func (t *Timer) Init() error {
	t.debugf(debugCmd, "init")
	if t.ticks == nil || !t.ticks.Running() {
		t.log.Warn("Timer init failed, tick reference not running")
		return ErrNotOK
	}

	steps := []func() error{
		t.Pause,
		func() error { return t.WriteLow(0) },
		func() error { return t.WriteHigh(0) },
		func() error { return t.Arm(0, DefaultHeartbeat) },
		t.Unpause,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			t.log.Warn("Timer init failed", "error", err)
			return err
		}
	}

	t.state = Initialized
	t.log.Info("Timer initialized")
	return nil
}

// Shut down the timer. Pauses the counter, disarms all alarms and
// disables all alarm interrupts.
func (t *Timer) Deinit() error {
	t.debugf(debugCmd, "deinit")
	if t.state != Initialized {
		return ErrModuleUninit
	}

	errs := []error{t.Pause()}
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		errs = append(errs, t.Disarm(n))
	}
	errs = append(errs, t.DisableInterrupts(reg.AlarmMask))

	err := merge(errs...)
	if err != nil {
		t.log.Warn("Timer deinit failed", "error", err)
		return err
	}

	t.state = Uninitialized
	t.log.Info("Timer deinitialized")
	return nil
}
