//go:build linux && !tinygo

/*
 * RP2040 - Physical register window through /dev/mem
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
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DevMem is a register file mapped from physical memory.
type DevMem struct {
	mapped []byte  // Whole mapping, page aligned.
	window []byte  // Register window inside mapping.
	base   uintptr // Physical base of window.
}

// Map the register window at physical address base from the memory
// device named by path, normally /dev/mem.
func OpenDevMem(path string, base uintptr) (*DevMem, error) {
	if (base & 3) != 0 {
		return nil, fmt.Errorf("register base not word aligned: %08x", base)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	page := uintptr(os.Getpagesize())
	start := base &^ (page - 1)
	skip := base - start
	length := int(((skip + uintptr(Size) + page - 1) / page) * page)

	mapped, err := unix.Mmap(int(file.Fd()), int64(start), length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unable to map %s at %08x: %w", path, base, err)
	}

	return &DevMem{
		mapped: mapped,
		window: mapped[skip : skip+uintptr(Size)],
		base:   base,
	}, nil
}

func (d *DevMem) word(offset uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(&d.window[offset]))
}

// Read a register, offsets outside window read as zero.
func (d *DevMem) Load(offset uint32) uint32 {
	if d.window == nil || !inWindow(offset) {
		return 0
	}
	return atomic.LoadUint32(d.word(offset))
}

// Write a register, offsets outside window are ignored.
func (d *DevMem) Store(offset uint32, value uint32) {
	if d.window == nil || !inWindow(offset) {
		return
	}
	atomic.StoreUint32(d.word(offset), value)
}

// Physical address of window.
func (d *DevMem) Base() uintptr {
	return d.base
}

// Release the mapping.
func (d *DevMem) Close() error {
	if d.mapped == nil {
		return errors.New("register window not mapped")
	}
	err := unix.Munmap(d.mapped)
	d.mapped = nil
	d.window = nil
	return err
}
