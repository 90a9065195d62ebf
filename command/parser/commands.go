/*
 * RP2040 - Command parser, timer commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	command "github.com/rcornwell/RP2040/command/command"
	core "github.com/rcornwell/RP2040/emu/core"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/timer"
	"github.com/rcornwell/RP2040/util/hex"
)

var cmdList = []cmd{
	{Name: "init", Min: 2, Process: initTimer},
	{Name: "deinit", Min: 3, Process: deinit},
	{Name: "pause", Min: 2, Process: pause},
	{Name: "unpause", Min: 2, Process: unpause},
	{Name: "read", Min: 3, Process: read},
	{Name: "raw", Min: 2, Process: raw},
	{Name: "write", Min: 1, Process: write},
	{Name: "arm", Min: 2, Process: arm},
	{Name: "disarm", Min: 5, Process: disarm},
	{Name: "status", Min: 3, Process: status},
	{Name: "enable", Min: 2, Process: enable},
	{Name: "disable", Min: 5, Process: disable},
	{Name: "force", Min: 1, Process: force},
	{Name: "irq", Min: 2, Process: irq},
	{Name: "clear", Min: 1, Process: clearIrq},
	{Name: "ack", Min: 2, Process: ack},
	{Name: "step", Min: 3, Process: step},
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "show", Min: 2, Process: show, Complete: showComplete},
	{Name: "set", Min: 3, Process: set, Complete: setComplete},
	{Name: "quit", Min: 4, Process: quit},
}

// Run fn with the driver, report driver result.
func run(core *core.Core, fn func(*timer.Timer) error) (bool, error) {
	return false, core.Do(fn)
}

// Get alarm number and check end of line.
func (line *cmdLine) getAlarm() (uint8, error) {
	n, err := line.getNumber()
	if err != nil {
		return 0, errors.New("alarm number required")
	}
	if n > 0xff {
		return 0, errors.New("alarm number too large")
	}
	return uint8(n), nil
}

// Handle commands that take an alarm number.
func alarmCommand(line *cmdLine, core *core.Core, fn func(*timer.Timer, uint8) error) (bool, error) {
	n, err := line.getAlarm()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, func(drv *timer.Timer) error {
		return fn(drv, n)
	})
}

// Handle commands that take an interrupt mask.
func maskCommand(line *cmdLine, core *core.Core, fn func(*timer.Timer, uint32) error) (bool, error) {
	mask, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, func(drv *timer.Timer) error {
		return fn(drv, mask)
	})
}

// Initialize timer.
func initTimer(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Init")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return false, core.InitTimer()
}

// Shut down timer.
func deinit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deinit")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, (*timer.Timer).Deinit)
}

// Pause counter.
func pause(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Pause")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, (*timer.Timer).Pause)
}

// Restart counter.
func unpause(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Unpause")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, (*timer.Timer).Unpause)
}

// Read 64 bit counter.
func read(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Read")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	var high, low uint32
	_, err := run(core, func(drv *timer.Timer) error {
		return drv.Read64(&high, &low)
	})
	if err != nil {
		return false, err
	}
	var str strings.Builder
	hex.FormatWord(&str, []uint32{high, low})
	fmt.Fprintln(line.out, strings.TrimSpace(str.String()))
	return false, nil
}

// Read low counter without latch.
func raw(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Raw")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	var low uint32
	_, err := run(core, func(drv *timer.Timer) error {
		return drv.ReadRaw32(&low)
	})
	if err != nil {
		return false, err
	}
	var str strings.Builder
	hex.FormatWord(&str, []uint32{low})
	fmt.Fprintln(line.out, strings.TrimSpace(str.String()))
	return false, nil
}

// Load counter with high and low words.
func write(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Write")
	high, err := line.getNumber()
	if err != nil {
		return false, err
	}
	low, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, func(drv *timer.Timer) error {
		return drv.Write64(&high, &low)
	})
}

// Arm an alarm.
func arm(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Arm")
	n, err := line.getAlarm()
	if err != nil {
		return false, err
	}
	trigger, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return run(core, func(drv *timer.Timer) error {
		return drv.Arm(n, trigger)
	})
}

// Disarm an alarm.
func disarm(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Disarm")
	return alarmCommand(line, core, (*timer.Timer).Disarm)
}

// Show status of one or all alarms.
func status(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Status")
	alarms := []uint8{}
	line.skipSpace()
	if line.isEOL() {
		for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
			alarms = append(alarms, n)
		}
	} else {
		n, err := line.getAlarm()
		if err != nil {
			return false, err
		}
		if err := line.checkEOL(); err != nil {
			return false, err
		}
		alarms = append(alarms, n)
	}

	result := make([]timer.AlarmStatus, len(alarms))
	_, _ = run(core, func(drv *timer.Timer) error {
		for i, n := range alarms {
			result[i] = drv.CheckStatus(n)
		}
		return nil
	})
	for i, n := range alarms {
		fmt.Fprintf(line.out, "alarm%d %s\n", n, result[i])
	}
	if len(alarms) == 1 && result[0] == timer.Failed {
		return false, timer.ErrInvalidParam
	}
	return false, nil
}

// Enable alarm interrupts.
func enable(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Enable")
	return maskCommand(line, core, (*timer.Timer).EnableInterrupts)
}

// Disable alarm interrupts.
func disable(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Disable")
	return maskCommand(line, core, (*timer.Timer).DisableInterrupts)
}

// Force alarm interrupt.
func force(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Force")
	return alarmCommand(line, core, (*timer.Timer).ForceTrigger)
}

// Show interrupt status of alarm.
func irq(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Irq")
	n, err := line.getAlarm()
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	var result timer.AlarmStatus
	_, _ = run(core, func(drv *timer.Timer) error {
		result = drv.CheckInterruptStatus(n)
		return nil
	})
	fmt.Fprintf(line.out, "irq%d %s\n", n, result)
	if result == timer.Failed {
		return false, timer.ErrInvalidParam
	}
	return false, nil
}

// Acknowledge alarm interrupt.
func clearIrq(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Clear")
	return alarmCommand(line, core, (*timer.Timer).ClearInterrupt)
}

// Acknowledge only one alarm interrupt.
func ack(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Ack")
	return alarmCommand(line, core, (*timer.Timer).AckInterrupt)
}

// Advance timer.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	count := uint32(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
		if err := line.checkEOL(); err != nil {
			return false, err
		}
	}
	if !core.Emulated() {
		return false, errors.New("step requires emulated timer")
	}
	core.Step(uint64(count))
	return false, nil
}

// Let clock run timer.
func start(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.SendStart()
	return false, nil
}

// Stop clock running timer.
func stop(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	core.SendStop()
	return false, nil
}

// Process the show command.
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")
	timerCmd := core.Command()
	optlist, err := line.getOptions(timerCmd, command.ValidShow)
	if err != nil {
		return false, err
	}

	out, err := timerCmd.Show(optlist)
	if err != nil {
		return false, err
	}
	fmt.Fprint(line.out, out)
	return false, nil
}

// Process the set command.
func set(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Set")
	timerCmd := core.Command()
	optlist, err := line.getOptions(timerCmd, command.ValidSet)
	if err != nil {
		return false, err
	}
	if len(optlist) == 0 {
		return false, errors.New("no options give to set command")
	}
	return false, timerCmd.Set(optlist)
}

// Handle commands that quit monitor.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
