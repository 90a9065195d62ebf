/*
 * RP2040 - In memory register file
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

package register

import "sync/atomic"

// Memory is a register file held in ordinary memory. Registers behave
// like plain storage, there are no hardware side effects.
type Memory struct {
	regs [Size >> 2]atomic.Uint32
}

// Create a register file with all registers zero.
func NewMemory() *Memory {
	return &Memory{}
}

// Check if offset is a register in the window.
func inWindow(offset uint32) bool {
	return offset < Size && (offset&3) == 0
}

// Read a register, offsets outside window read as zero.
func (m *Memory) Load(offset uint32) uint32 {
	if !inWindow(offset) {
		return 0
	}
	return m.regs[offset>>2].Load()
}

// Write a register, offsets outside window are ignored.
func (m *Memory) Store(offset uint32, value uint32) {
	if !inWindow(offset) {
		return
	}
	m.regs[offset>>2].Store(value)
}

// Clear all registers.
func (m *Memory) Reset() {
	for i := range m.regs {
		m.regs[i].Store(0)
	}
}
