/*
 * RP2040 - Timer driver result codes
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

package timer

import "strings"

// Code is the result of a driver operation. Codes are bit flags so that
// composite operations can merge the results of their steps, nil is OK.
type Code uint8

const (
	ErrNotOK        Code = 1 << iota // Hardware did not take the operation.
	ErrInvalidParam                  // Null reference, bad index, mask or time.
	ErrModuleUninit                  // Driver has not been initialized.
)

var codeNames = []struct {
	code Code
	name string
}{
	{ErrNotOK, "operation failed"},
	{ErrInvalidParam, "invalid parameter"},
	{ErrModuleUninit, "module not initialized"},
}

func (c Code) Error() string {
	parts := []string{}
	for _, n := range codeNames {
		if (c & n.code) != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "timer: ok"
	}
	return "timer: " + strings.Join(parts, ", ")
}

// Report whether any step of c failed with target.
func (c Code) Is(target error) bool {
	t, ok := target.(Code)
	return ok && t != 0 && (c&t) == t
}

// Return code for err, 0 for nil. Errors not made by this package count
// as ErrNotOK.
func codeOf(err error) Code {
	if err == nil {
		return 0
	}
	c, ok := err.(Code)
	if !ok {
		return ErrNotOK
	}
	return c
}

// Merge results of several steps.
func merge(errs ...error) error {
	var c Code
	for _, err := range errs {
		c |= codeOf(err)
	}
	if c == 0 {
		return nil
	}
	return c
}

// AlarmStatus is the observed state of an alarm or its interrupt.
type AlarmStatus uint8

const (
	NotSet AlarmStatus = iota
	SetNotTriggered
	Triggered
	Failed
)

func (s AlarmStatus) String() string {
	switch s {
	case NotSet:
		return "not set"
	case SetNotTriggered:
		return "set"
	case Triggered:
		return "triggered"
	case Failed:
		return "failed"
	}
	return "unknown"
}
