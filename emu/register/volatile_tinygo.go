//go:build tinygo

/*
 * RP2040 - Timer registers on the target
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

import (
	"runtime/volatile"
	"unsafe"
)

type volatileFile struct {
	regs *[Size >> 2]volatile.Register32
}

// Return the timer peripheral register file.
func Peripheral() File {
	return volatileFile{regs: (*[Size >> 2]volatile.Register32)(unsafe.Pointer(TimerBase))}
}

func (f volatileFile) Load(offset uint32) uint32 {
	if !inWindow(offset) {
		return 0
	}
	return f.regs[offset>>2].Get()
}

func (f volatileFile) Store(offset uint32, value uint32) {
	if !inWindow(offset) {
		return
	}
	f.regs[offset>>2].Set(value)
}

