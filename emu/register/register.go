/*
 * RP2040 - Timer register map
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

import "fmt"

// Register offsets from the timer base, RP2040 datasheet 4.6.5.
const (
	TIMEHW   uint32 = 0x00 // Write to bits 63:32 of time, always write TIMELW first.
	TIMELW   uint32 = 0x04 // Write to bits 31:0 of time, writes do not get copied until TIMEHW written.
	TIMEHR   uint32 = 0x08 // Read from bits 63:32 of time, always read TIMELR first.
	TIMELR   uint32 = 0x0c // Read from bits 31:0 of time.
	ALARM0   uint32 = 0x10 // Arm alarm 0 and configure time.
	ALARM1   uint32 = 0x14
	ALARM2   uint32 = 0x18
	ALARM3   uint32 = 0x1c
	ARMED    uint32 = 0x20 // Indicates armed/disarmed status of each alarm.
	TIMERAWH uint32 = 0x24 // Raw read from bits 63:32 of time, no side effects.
	TIMERAWL uint32 = 0x28 // Raw read from bits 31:0 of time, no side effects.
	DBGPAUSE uint32 = 0x2c // Pause when processor is in debug mode.
	PAUSE    uint32 = 0x30 // Set high to pause the timer.
	INTR     uint32 = 0x34 // Raw interrupts, write 1 to clear.
	INTE     uint32 = 0x38 // Interrupt enable.
	INTF     uint32 = 0x3c // Interrupt force.
	INTS     uint32 = 0x40 // Interrupt status after masking and forcing.

	Size uint32 = INTS + 4 // Size of register window in bytes.
)

// Base address of timer on the RP2040.
const TimerBase uintptr = 0x40054000

// Number of alarm comparators.
const NumAlarms = 4

// All four alarm bits.
const AlarmMask uint32 = (1 << NumAlarms) - 1

// Pause register bits.
const (
	PauseMask uint32 = 0x00000001
	PauseSet  uint32 = 0x00000001
	PauseClr  uint32 = 0x00000000
)

var names = map[uint32]string{
	TIMEHW:   "TIMEHW",
	TIMELW:   "TIMELW",
	TIMEHR:   "TIMEHR",
	TIMELR:   "TIMELR",
	ALARM0:   "ALARM0",
	ALARM1:   "ALARM1",
	ALARM2:   "ALARM2",
	ALARM3:   "ALARM3",
	ARMED:    "ARMED",
	TIMERAWH: "TIMERAWH",
	TIMERAWL: "TIMERAWL",
	DBGPAUSE: "DBGPAUSE",
	PAUSE:    "PAUSE",
	INTR:     "INTR",
	INTE:     "INTE",
	INTF:     "INTF",
	INTS:     "INTS",
}

// Cell is one 32 bit hardware register. Each access goes to the register,
// values are never cached.
type Cell interface {
	Load() uint32
	Store(value uint32)
}

// File is a block of registers addressed by byte offset from the base.
type File interface {
	Load(offset uint32) uint32
	Store(offset uint32, value uint32)
}

// Offset of compare register for alarm n. The caller checks n.
func AlarmOffset(n uint8) uint32 {
	return ALARM0 + (4 * uint32(n))
}

// Bit for alarm n in ARMED and the interrupt registers.
func AlarmBit(n uint8) uint32 {
	return 1 << n
}

// Return name of register at offset, or hex offset if not a register.
func Name(offset uint32) string {
	name, ok := names[offset]
	if !ok {
		return fmt.Sprintf("+%02X", offset)
	}
	return name
}

// Return list of register offsets in address order.
func Offsets() []uint32 {
	list := make([]uint32, 0, len(names))
	for offset := uint32(0); offset < Size; offset += 4 {
		list = append(list, offset)
	}
	return list
}

type fileCell struct {
	file   File
	offset uint32
}

func (c fileCell) Load() uint32 {
	return c.file.Load(c.offset)
}

func (c fileCell) Store(value uint32) {
	c.file.Store(c.offset, value)
}

// Return a cell that accesses one register of a file.
func CellOf(file File, offset uint32) Cell {
	return fileCell{file: file, offset: offset}
}
