/*
 * RP2040 - Convert Hex to strings.
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

package hex

import "strings"

var hexMap = "0123456789ABCDEF"

func formatHex(str *strings.Builder, full uint32) {
	shift := 28
	for i := 0; i < 8; i++ {
		str.WriteByte(hexMap[(full>>shift)&0xf])
		shift -= 4
	}
}

func FormatWord(str *strings.Builder, word []uint32) {
	for _, full := range word {
		formatHex(str, full)
		str.WriteByte(' ')
	}
}

// Format high and low words as one 64 bit number.
func FormatDouble(str *strings.Builder, high uint32, low uint32) {
	formatHex(str, high)
	formatHex(str, low)
	str.WriteByte(' ')
}

// Format lower width bits of value, most significant first.
func FormatBits(str *strings.Builder, value uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		if (value>>i)&1 != 0 {
			str.WriteByte('1')
		} else {
			str.WriteByte('0')
		}
	}
}

func FormatDecimal(str *strings.Builder, num byte) {
	if num >= 100 {
		str.WriteByte(hexMap[num/100])
		num %= 100
	}
	if num >= 10 {
		str.WriteByte(hexMap[num/10])
		num %= 10
	}
	str.WriteByte(hexMap[num])
}
