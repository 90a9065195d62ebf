//go:build !linux || tinygo

/*
 * RP2040 - Physical register window, unsupported systems
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

import "errors"

// DevMem is not available on this system.
type DevMem struct{}

// Physical memory can only be mapped on Linux.
func OpenDevMem(_ string, _ uintptr) (*DevMem, error) {
	return nil, errors.New("physical memory access not supported")
}

func (d *DevMem) Load(_ uint32) uint32 {
	return 0
}

func (d *DevMem) Store(_ uint32, _ uint32) {
}

func (d *DevMem) Base() uintptr {
	return 0
}

func (d *DevMem) Close() error {
	return nil
}
