/*
 * RP2040 - Timer register map test
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlarmOffset(t *testing.T) {
	expected := []uint32{ALARM0, ALARM1, ALARM2, ALARM3}
	for n := uint8(0); n < uint8(NumAlarms); n++ {
		assert.Equal(t, expected[n], AlarmOffset(n), "alarm %d", n)
		assert.Equal(t, uint32(1)<<n, AlarmBit(n), "alarm %d", n)
	}
	assert.Equal(t, uint32(0xf), AlarmMask)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "TIMELR", Name(TIMELR))
	assert.Equal(t, "INTS", Name(INTS))
	assert.Equal(t, "+44", Name(0x44))
	assert.Equal(t, "+104", Name(0x104))
	assert.Equal(t, "+06", Name(0x6))

	offsets := Offsets()
	require.Len(t, offsets, 17)
	assert.Equal(t, TIMEHW, offsets[0])
	assert.Equal(t, INTS, offsets[len(offsets)-1])
	for _, offset := range offsets {
		assert.NotEqual(t, byte('+'), Name(offset)[0], "offset %02x has no name", offset)
	}
}

func TestMemoryLoadStore(t *testing.T) {
	mem := NewMemory()
	for i, offset := range Offsets() {
		mem.Store(offset, uint32(i)*0x01010101)
	}
	for i, offset := range Offsets() {
		assert.Equal(t, uint32(i)*0x01010101, mem.Load(offset), Name(offset))
	}

	// Outside the window nothing is stored.
	mem.Store(Size, 0xffffffff)
	assert.Equal(t, uint32(0), mem.Load(Size))
	mem.Store(TIMELR+1, 0xffffffff)
	assert.Equal(t, uint32(0), mem.Load(TIMELR+1))
	assert.Equal(t, uint32(3)*0x01010101, mem.Load(TIMELR))

	mem.Reset()
	for _, offset := range Offsets() {
		assert.Zero(t, mem.Load(offset), Name(offset))
	}
}

func TestCellOf(t *testing.T) {
	mem := NewMemory()
	cell := CellOf(mem, ALARM2)
	cell.Store(1234)
	assert.Equal(t, uint32(1234), mem.Load(ALARM2))
	mem.Store(ALARM2, 4321)
	assert.Equal(t, uint32(4321), cell.Load())
}
