/*
 * RP2040 - Timer configuration directives.
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

package timerconfig

import (
	"errors"
	"strconv"
	"sync"
	"time"

	config "github.com/rcornwell/RP2040/config/configparser"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/ticks"
)

// Settings collected from configuration file.
type Settings struct {
	Cycles   uint32        // Tick generator divider, 0 leaves it stopped.
	Interval time.Duration // Clock packet interval.
	AutoInit bool          // Initialize timer at start.
	Base     uintptr       // Physical base of timer for /dev/mem.
}

var (
	mu       sync.Mutex
	settings = Default()
)

// Return default settings, 12MHz reference and 1ms clock.
func Default() Settings {
	return Settings{
		Cycles:   12,
		Interval: ticks.DefaultInterval,
		Base:     reg.TimerBase,
	}
}

// Return current settings.
func Get() Settings {
	mu.Lock()
	defer mu.Unlock()
	return settings
}

// Put settings back to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	settings = Default()
}

// register directives on initialize.
func init() {
	config.RegisterOption("TICKS", setTicks)
	config.RegisterOption("CLOCK", setClock)
	config.RegisterSwitch("AUTOINIT", setAutoInit)
	config.RegisterOption("BASE", setBase)
}

// TICKS <cycles>.
func setTicks(value string, _ []config.Option) error {
	cycles, err := strconv.ParseUint(value, 10, 32)
	if err != nil || cycles > ticks.MaxCycles {
		return errors.New("ticks must be number between 0 and 511: " + value)
	}
	mu.Lock()
	settings.Cycles = uint32(cycles)
	mu.Unlock()
	return nil
}

// CLOCK <usec>.
func setClock(value string, _ []config.Option) error {
	usec, err := strconv.ParseUint(value, 10, 32)
	if err != nil || usec == 0 {
		return errors.New("clock must be number of microseconds: " + value)
	}
	mu.Lock()
	settings.Interval = time.Duration(usec) * time.Microsecond
	mu.Unlock()
	return nil
}

// AUTOINIT.
func setAutoInit(_ string, _ []config.Option) error {
	mu.Lock()
	settings.AutoInit = true
	mu.Unlock()
	return nil
}

// BASE <hex>.
func setBase(value string, _ []config.Option) error {
	base, err := strconv.ParseUint(value, 16, 32)
	if err != nil || (base&3) != 0 {
		return errors.New("base must be word aligned hex address: " + value)
	}
	mu.Lock()
	settings.Base = uintptr(base)
	mu.Unlock()
	return nil
}
