/*
 * RP2040 - Show and set commands for timer
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

package core

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	command "github.com/rcornwell/RP2040/command/command"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/timer"
	"github.com/rcornwell/RP2040/util/hex"
)

type timerCommand struct {
	core *Core
}

// Return command interface for the timer.
func (core *Core) Command() command.Command {
	return &timerCommand{core: core}
}

// Options for timer show and set.
func (tc *timerCommand) Options(_ string) []command.Options {
	debugList := timer.DebugOptions()
	slices.Sort(debugList)
	return []command.Options{
		{Name: "counter", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{Name: "alarms", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{Name: "irq", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{Name: "regs", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{
			Name: "debug", OptionType: command.OptionList, OptionValid: command.ValidSet,
			OptionList: debugList,
		},
	}
}

// Set timer options.
func (tc *timerCommand) Set(options []*command.CmdOption) error {
	for _, opt := range options {
		switch opt.Name {
		case "debug":
			err := tc.core.Do(func(drv *timer.Timer) error {
				return drv.Debug(strings.ToUpper(opt.EqualOpt))
			})
			if err != nil {
				return err
			}
		default:
			return errors.New("timer invalid set option: " + opt.Name)
		}
	}
	return nil
}

// Show timer state.
func (tc *timerCommand) Show(options []*command.CmdOption) (string, error) {
	if len(options) == 0 {
		options = []*command.CmdOption{{Name: "counter"}, {Name: "alarms"}, {Name: "irq"}}
	}
	var str strings.Builder
	err := tc.core.Do(func(drv *timer.Timer) error {
		for _, opt := range options {
			switch opt.Name {
			case "counter":
				showCounter(&str, drv)
			case "alarms":
				showAlarms(&str, drv)
			case "irq":
				showIrq(&str, drv)
			case "regs":
				showRegs(&str, drv)
			default:
				return errors.New("timer invalid show option: " + opt.Name)
			}
		}
		str.WriteString("heartbeats " + strconv.FormatUint(tc.core.beats, 10) + "\n")
		return nil
	})
	return str.String(), err
}

func showCounter(str *strings.Builder, drv *timer.Timer) {
	str.WriteString("timer " + drv.State().String())
	if (drv.Register(reg.PAUSE) & reg.PauseMask) != 0 {
		str.WriteString(" paused")
	}
	str.WriteString("\ncounter ")
	now := drv.ReadRaw64()
	hex.FormatDouble(str, uint32(now>>32), uint32(now))
	str.WriteString("\n")
}

func showAlarms(str *strings.Builder, drv *timer.Timer) {
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		str.WriteString("alarm")
		hex.FormatDecimal(str, n)
		str.WriteString(" ")
		hex.FormatWord(str, []uint32{drv.AlarmTime(n)})
		str.WriteString(drv.CheckStatus(n).String() + "\n")
	}
}

func showIrq(str *strings.Builder, drv *timer.Timer) {
	for _, offset := range []uint32{reg.INTR, reg.INTE, reg.INTF, reg.INTS} {
		str.WriteString(reg.Name(offset) + " ")
		hex.FormatBits(str, drv.Register(offset), reg.NumAlarms)
		str.WriteString("\n")
	}
}

func showRegs(str *strings.Builder, drv *timer.Timer) {
	for _, offset := range reg.Offsets() {
		switch offset {
		case reg.TIMEHW, reg.TIMELW, reg.TIMELR:
			// Write only, or reading changes the latch.
			continue
		}
		name := reg.Name(offset)
		str.WriteString(name + strings.Repeat(" ", 9-len(name)))
		hex.FormatWord(str, []uint32{drv.Register(offset)})
		str.WriteString("\n")
	}
}
