/*
 * RP2040 - Core timer monitor test
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
	"strings"
	"testing"

	command "github.com/rcornwell/RP2040/command/command"
	"github.com/rcornwell/RP2040/emu/master"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/rp2040"
	"github.com/rcornwell/RP2040/emu/ticks"
	"github.com/rcornwell/RP2040/emu/timer"
)

func startCore(t *testing.T) (*Core, *rp2040.Timer) {
	t.Helper()
	gen := ticks.NewGenerator()
	if err := gen.Enable(12); err != nil {
		t.Fatalf("Enable failed: %s", err.Error())
	}
	model := rp2040.New(gen)
	drv := timer.New(model, gen)
	core := NewCore(make(chan master.Packet), drv, model)
	go core.Start()
	t.Cleanup(core.Stop)
	return core, model
}

func TestHeartbeat(t *testing.T) {
	core, model := startCore(t)
	if err := core.InitTimer(); err != nil {
		t.Fatalf("InitTimer failed: %s", err.Error())
	}
	core.Step(3500)
	if model.Counter() != 3500 {
		t.Errorf("Counter got: %d expected: %d", model.Counter(), 3500)
	}
	var beats uint64
	var next uint32
	_ = core.Do(func(drv *timer.Timer) error {
		beats = core.Beats()
		next = drv.AlarmTime(0)
		return nil
	})
	if beats != 3 {
		t.Errorf("Heartbeats got: %d expected: %d", beats, 3)
	}
	if next != 4000 {
		t.Errorf("Next heartbeat got: %d expected: %d", next, 4000)
	}
	if model.IRQ() {
		t.Errorf("Heartbeat interrupt not cleared")
	}
}

func TestHeartbeatKeepsAlarm(t *testing.T) {
	core, _ := startCore(t)
	if err := core.InitTimer(); err != nil {
		t.Fatalf("InitTimer failed: %s", err.Error())
	}
	_ = core.Do(func(drv *timer.Timer) error {
		return errors.Join(drv.EnableInterrupts(reg.AlarmBit(1)), drv.Arm(1, 500))
	})
	core.Step(2000)
	var status timer.AlarmStatus
	_ = core.Do(func(drv *timer.Timer) error {
		status = drv.CheckStatus(1)
		return nil
	})
	if status != timer.Triggered {
		t.Errorf("Alarm 1 got: %s expected: %s", status, timer.Triggered)
	}
}

func TestStepUninit(t *testing.T) {
	core, model := startCore(t)
	core.Step(2000)
	if model.Counter() != 2000 {
		t.Errorf("Counter got: %d expected: %d", model.Counter(), 2000)
	}
	err := core.Do(func(drv *timer.Timer) error {
		if core.Beats() != 0 {
			t.Errorf("Heartbeat without init")
		}
		return drv.Deinit()
	})
	if err == nil {
		t.Errorf("Deinit without init succeeded")
	}
}

func TestClockPackets(t *testing.T) {
	core, model := startCore(t)
	// Ticks ignored until started.
	core.Master <- master.Packet{Msg: master.TimeClock, Count: 100}
	core.SendStart()
	core.Master <- master.Packet{Msg: master.TimeClock, Count: 100}
	core.SendStop()
	core.Master <- master.Packet{Msg: master.TimeClock, Count: 100}
	_ = core.Do(func(*timer.Timer) error { return nil })
	if model.Counter() != 100 {
		t.Errorf("Counter got: %d expected: %d", model.Counter(), 100)
	}
}

func TestPausedStep(t *testing.T) {
	core, model := startCore(t)
	_ = core.Do(func(drv *timer.Timer) error { return drv.Pause() })
	core.Step(500)
	if model.Counter() != 0 {
		t.Errorf("Paused counter moved: %d", model.Counter())
	}
}

func TestShow(t *testing.T) {
	core, _ := startCore(t)
	if err := core.InitTimer(); err != nil {
		t.Fatalf("InitTimer failed: %s", err.Error())
	}
	cmd := core.Command()
	out, err := cmd.Show(nil)
	if err != nil {
		t.Errorf("Show failed: %s", err.Error())
	}
	if !strings.Contains(out, "timer initialized") {
		t.Errorf("Show missing state: %s", out)
	}
	if !strings.Contains(out, "alarm0 000003E8 set") {
		t.Errorf("Show missing heartbeat alarm: %s", out)
	}
	if !strings.Contains(out, "INTE 0001") {
		t.Errorf("Show missing interrupt enable: %s", out)
	}

	out, err = cmd.Show([]*command.CmdOption{{Name: "regs"}})
	if err != nil {
		t.Errorf("Show regs failed: %s", err.Error())
	}
	if !strings.Contains(out, "ARMED    00000001") {
		t.Errorf("Show regs missing armed: %s", out)
	}
	if strings.Contains(out, reg.Name(reg.TIMELR)) {
		t.Errorf("Show regs read latch register: %s", out)
	}

	if _, err := cmd.Show([]*command.CmdOption{{Name: "bogus"}}); err == nil {
		t.Errorf("Show accepted bad option")
	}
}

func TestSet(t *testing.T) {
	core, _ := startCore(t)
	cmd := core.Command()
	if err := cmd.Set([]*command.CmdOption{{Name: "debug", EqualOpt: "alarm"}}); err != nil {
		t.Errorf("Set debug failed: %s", err.Error())
	}
	if err := cmd.Set([]*command.CmdOption{{Name: "debug", EqualOpt: "bogus"}}); err == nil {
		t.Errorf("Set accepted bad debug flag")
	}
	if err := cmd.Set([]*command.CmdOption{{Name: "speed"}}); err == nil {
		t.Errorf("Set accepted bad option")
	}
}
