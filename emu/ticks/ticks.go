/*
 * RP2040 - Watchdog tick generator
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
	"errors"
	"sync/atomic"
)

// Largest cycle count the tick generator divider holds.
const MaxCycles = 0x1ff

// Source reports if the tick reference is running.
type Source interface {
	Running() bool
}

// Generator models the watchdog tick generator. It divides clk_ref by
// cycles to make the 1us reference the timer counts.
type Generator struct {
	cycles  atomic.Uint32
	enabled atomic.Bool
}

// Create a stopped generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Start generator dividing clk_ref by cycles.
func (g *Generator) Enable(cycles uint32) error {
	if cycles == 0 || cycles > MaxCycles {
		return errors.New("tick cycles must be between 1 and 511")
	}
	g.cycles.Store(cycles)
	g.enabled.Store(true)
	return nil
}

// Stop generator.
func (g *Generator) Disable() {
	g.enabled.Store(false)
}

// Report if generator is producing ticks.
func (g *Generator) Running() bool {
	return g.enabled.Load()
}

// Return current divider.
func (g *Generator) Cycles() uint32 {
	return g.cycles.Load()
}

// Always is a source that never stops.
type Always struct{}

func (Always) Running() bool {
	return true
}
