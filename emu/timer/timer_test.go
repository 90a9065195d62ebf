/*
 * RP2040 - timer driver test
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

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/rp2040"
	"github.com/rcornwell/RP2040/util/debug"
)

type tickStub struct {
	running bool
}

func (ts *tickStub) Running() bool {
	return ts.running
}

// Register file where the pause bit never changes.
type stuckPause struct {
	*reg.Memory
}

func (s stuckPause) Store(offset uint32, value uint32) {
	if offset == reg.PAUSE {
		return
	}
	s.Memory.Store(offset, value)
}

func setup() (*Timer, *reg.Memory) {
	mem := reg.NewMemory()
	return New(mem, &tickStub{running: true}), mem
}

func setupInit(t *testing.T) (*Timer, *reg.Memory) {
	t.Helper()
	tm, mem := setup()
	if err := tm.Init(); err != nil {
		t.Fatalf("Init failed: %s", err.Error())
	}
	return tm, mem
}

func TestInit(t *testing.T) {
	tm, mem := setup()
	if tm.State() != Uninitialized {
		t.Errorf("New timer not uninitialized")
	}
	mem.Store(reg.TIMEHW, 0x55)
	mem.Store(reg.TIMELW, 0xaa)
	err := tm.Init()
	if err != nil {
		t.Errorf("Init failed: %s", err.Error())
	}
	if !tm.Initialized() {
		t.Errorf("Init did not set state got: %s", tm.State())
	}
	if v := mem.Load(reg.TIMEHW); v != 0 {
		t.Errorf("Init did not clear high counter got: %08x", v)
	}
	if v := mem.Load(reg.TIMELW); v != 0 {
		t.Errorf("Init did not clear low counter got: %08x", v)
	}
	if v := mem.Load(reg.ALARM0); v != DefaultHeartbeat {
		t.Errorf("Init alarm 0 got: %d expected: %d", v, DefaultHeartbeat)
	}
	if v := mem.Load(reg.PAUSE); v != reg.PauseClr {
		t.Errorf("Init left counter paused")
	}
	// Running Init again repeats the sequence.
	if err := tm.Init(); err != nil {
		t.Errorf("Second Init failed: %s", err.Error())
	}
}

func TestInitNoTicks(t *testing.T) {
	mem := reg.NewMemory()
	tm := New(mem, &tickStub{running: false})
	err := tm.Init()
	if !errors.Is(err, ErrNotOK) {
		t.Errorf("Init without ticks got: %v expected: %v", err, ErrNotOK)
	}
	if tm.State() != Uninitialized {
		t.Errorf("Init without ticks changed state")
	}
	err = tm.Deinit()
	if !errors.Is(err, ErrModuleUninit) {
		t.Errorf("Deinit got: %v expected: %v", err, ErrModuleUninit)
	}

	tm = New(mem, nil)
	if err := tm.Init(); !errors.Is(err, ErrNotOK) {
		t.Errorf("Init without tick source got: %v", err)
	}
}

func TestInitPauseFail(t *testing.T) {
	mem := reg.NewMemory()
	tm := New(stuckPause{mem}, &tickStub{running: true})
	err := tm.Init()
	if !errors.Is(err, ErrNotOK) {
		t.Errorf("Init with stuck pause got: %v expected: %v", err, ErrNotOK)
	}
	if tm.Initialized() {
		t.Errorf("Init with stuck pause set initialized")
	}
}

func TestDeinit(t *testing.T) {
	tm, mem := setupInit(t)
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		mem.Store(reg.AlarmOffset(n), 100+uint32(n))
	}
	mem.Store(reg.ARMED, reg.AlarmMask)
	mem.Store(reg.INTE, 0xf)

	err := tm.Deinit()
	if err != nil {
		t.Errorf("Deinit failed: %s", err.Error())
	}
	if tm.Initialized() {
		t.Errorf("Deinit did not change state")
	}
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		if v := mem.Load(reg.AlarmOffset(n)); v != 0 {
			t.Errorf("Deinit alarm %d got: %d", n, v)
		}
	}
	if v := mem.Load(reg.ARMED); v != 0 {
		t.Errorf("Deinit armed got: %x", v)
	}
	if v := mem.Load(reg.INTE); v != 0 {
		t.Errorf("Deinit interrupt enable got: %x", v)
	}
	if v := mem.Load(reg.PAUSE); v != reg.PauseSet {
		t.Errorf("Deinit did not pause counter")
	}
	if !errors.Is(tm.Deinit(), ErrModuleUninit) {
		t.Errorf("Second Deinit did not fail")
	}
}

func TestDeinitFail(t *testing.T) {
	tm, mem := setupInit(t)
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		mem.Store(reg.AlarmOffset(n), 100+uint32(n))
	}
	mem.Store(reg.INTE, 0xf)

	// Pause will not take, remaining steps still run.
	tm.regs = stuckPause{mem}
	err := tm.Deinit()
	if !errors.Is(err, ErrNotOK) {
		t.Errorf("Deinit with stuck pause got: %v expected: %v", err, ErrNotOK)
	}
	if errors.Is(err, ErrInvalidParam) {
		t.Errorf("Deinit with stuck pause reported invalid parameter")
	}
	if !tm.Initialized() {
		t.Errorf("Failed Deinit changed state")
	}
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		if v := mem.Load(reg.AlarmOffset(n)); v != 0 {
			t.Errorf("Failed Deinit alarm %d got: %d", n, v)
		}
	}
	if v := mem.Load(reg.INTE); v != 0 {
		t.Errorf("Failed Deinit interrupt enable got: %x", v)
	}
}

func TestUninitialized(t *testing.T) {
	tm, _ := setup()
	var v uint32
	if !errors.Is(tm.ReadLow(&v), ErrModuleUninit) {
		t.Errorf("ReadLow allowed before Init")
	}
	if !errors.Is(tm.ReadHigh(&v), ErrModuleUninit) {
		t.Errorf("ReadHigh allowed before Init")
	}
	if !errors.Is(tm.EnableInterrupts(1), ErrModuleUninit) {
		t.Errorf("EnableInterrupts allowed before Init")
	}
	if !errors.Is(tm.DisableInterrupts(1), ErrModuleUninit) {
		t.Errorf("DisableInterrupts allowed before Init")
	}
	// These work without Init.
	if tm.Arm(1, 10) != nil {
		t.Errorf("Arm failed before Init")
	}
	if tm.Disarm(1) != nil {
		t.Errorf("Disarm failed before Init")
	}
	if tm.ReadRaw32(&v) != nil {
		t.Errorf("ReadRaw32 failed before Init")
	}
	if tm.WriteLow(1) != nil || tm.WriteHigh(1) != nil {
		t.Errorf("Counter write failed before Init")
	}
}

func TestArm(t *testing.T) {
	tm, mem := setup()
	for n := uint8(0); n < uint8(reg.NumAlarms); n++ {
		if !errors.Is(tm.Arm(n, 0), ErrInvalidParam) {
			t.Errorf("Arm %d with zero time accepted", n)
		}
		if err := tm.Arm(n, 0x1234+uint32(n)); err != nil {
			t.Errorf("Arm %d failed: %s", n, err.Error())
		}
		if v := mem.Load(reg.AlarmOffset(n)); v != 0x1234+uint32(n) {
			t.Errorf("Arm %d compare got: %x", n, v)
		}
		// Hardware sets armed bit.
		mem.Store(reg.ARMED, mem.Load(reg.ARMED)|reg.AlarmBit(n))
		if s := tm.CheckStatus(n); s != SetNotTriggered {
			t.Errorf("Alarm %d status got: %s expected: %s", n, s, SetNotTriggered)
		}
		if v := tm.AlarmTime(n); v != 0x1234+uint32(n) {
			t.Errorf("Alarm %d time got: %x", n, v)
		}
	}
}

func TestBadAlarm(t *testing.T) {
	tm, _ := setup()
	for _, n := range []uint8{4, 5, 255} {
		if s := tm.CheckStatus(n); s != Failed {
			t.Errorf("CheckStatus %d got: %s expected: %s", n, s, Failed)
		}
		if !errors.Is(tm.Arm(n, 10), ErrInvalidParam) {
			t.Errorf("Arm %d accepted", n)
		}
		if !errors.Is(tm.Disarm(n), ErrInvalidParam) {
			t.Errorf("Disarm %d accepted", n)
		}
		if !errors.Is(tm.ForceTrigger(n), ErrInvalidParam) {
			t.Errorf("ForceTrigger %d accepted", n)
		}
		if !errors.Is(tm.ClearInterrupt(n), ErrInvalidParam) {
			t.Errorf("ClearInterrupt %d accepted", n)
		}
		if s := tm.CheckInterruptStatus(n); s != Failed {
			t.Errorf("CheckInterruptStatus %d got: %s", n, s)
		}
		if tm.AlarmTime(n) != 0 {
			t.Errorf("AlarmTime %d not zero", n)
		}
	}
}

func TestCheckStatus(t *testing.T) {
	tm, mem := setup()
	if s := tm.CheckStatus(0); s != NotSet {
		t.Errorf("Idle alarm got: %s expected: %s", s, NotSet)
	}
	mem.Store(reg.INTS, reg.AlarmBit(0))
	if s := tm.CheckStatus(0); s != Triggered {
		t.Errorf("Fired alarm got: %s expected: %s", s, Triggered)
	}
	// Compare set but armed clear.
	mem.Store(reg.INTS, 0)
	mem.Store(reg.ALARM2, 10)
	if s := tm.CheckStatus(2); s != NotSet {
		t.Errorf("Unarmed alarm got: %s expected: %s", s, NotSet)
	}
	// Armed with zero compare and no status.
	mem.Store(reg.ARMED, reg.AlarmBit(3))
	if s := tm.CheckStatus(3); s != NotSet {
		t.Errorf("Armed zero alarm got: %s expected: %s", s, NotSet)
	}
}

func TestDisarm(t *testing.T) {
	tm, mem := setup()
	mem.Store(reg.ALARM1, 55)
	mem.Store(reg.ALARM2, 66)
	mem.Store(reg.ARMED, reg.AlarmBit(1)|reg.AlarmBit(2))
	if err := tm.Disarm(1); err != nil {
		t.Errorf("Disarm failed: %s", err.Error())
	}
	if v := mem.Load(reg.ALARM1); v != 0 {
		t.Errorf("Disarm left compare: %d", v)
	}
	if v := mem.Load(reg.ARMED); v != reg.AlarmBit(2) {
		t.Errorf("Disarm armed got: %x expected: %x", v, reg.AlarmBit(2))
	}
	// Disarm again is fine.
	if err := tm.Disarm(1); err != nil {
		t.Errorf("Second Disarm failed: %s", err.Error())
	}
	if v := mem.Load(reg.ALARM1); v != 0 {
		t.Errorf("Second Disarm left compare: %d", v)
	}
	if v := mem.Load(reg.ALARM2); v != 66 {
		t.Errorf("Disarm changed other alarm got: %d", v)
	}
}

func TestInterruptMask(t *testing.T) {
	tm, mem := setupInit(t)
	for _, mask := range []uint32{0, 16, 0x10001, 0xffffffff} {
		if !errors.Is(tm.EnableInterrupts(mask), ErrInvalidParam) {
			t.Errorf("EnableInterrupts %x accepted", mask)
		}
		if !errors.Is(tm.DisableInterrupts(mask), ErrInvalidParam) {
			t.Errorf("DisableInterrupts %x accepted", mask)
		}
	}
	if err := tm.EnableInterrupts(15); err != nil {
		t.Errorf("EnableInterrupts 15 failed: %s", err.Error())
	}
	if v := mem.Load(reg.INTE); v != 15 {
		t.Errorf("Enable all got: %x", v)
	}

	mem.Store(reg.INTE, 0xc)
	if err := tm.EnableInterrupts(1); err != nil {
		t.Errorf("EnableInterrupts 1 failed: %s", err.Error())
	}
	if v := mem.Load(reg.INTE); v != 0xd {
		t.Errorf("Enable bit 0 got: %x expected: %x", v, 0xd)
	}
	if err := tm.DisableInterrupts(1); err != nil {
		t.Errorf("DisableInterrupts 1 failed: %s", err.Error())
	}
	if v := mem.Load(reg.INTE); v != 0xc {
		t.Errorf("Disable bit 0 got: %x expected: %x", v, 0xc)
	}
}

func TestForceClear(t *testing.T) {
	tm, mem := setup()
	mem.Store(reg.INTF, reg.AlarmBit(0))
	if err := tm.ForceTrigger(2); err != nil {
		t.Errorf("ForceTrigger failed: %s", err.Error())
	}
	if v := mem.Load(reg.INTF); v != reg.AlarmBit(0)|reg.AlarmBit(2) {
		t.Errorf("ForceTrigger got: %x", v)
	}
	mem.Store(reg.INTR, reg.AlarmBit(1))
	if err := tm.ClearInterrupt(3); err != nil {
		t.Errorf("ClearInterrupt failed: %s", err.Error())
	}
	if v := mem.Load(reg.INTR); v != reg.AlarmBit(1)|reg.AlarmBit(3) {
		t.Errorf("ClearInterrupt got: %x", v)
	}

	mem.Store(reg.INTS, reg.AlarmBit(2))
	if s := tm.CheckInterruptStatus(2); s != Triggered {
		t.Errorf("Interrupt status 2 got: %s", s)
	}
	if s := tm.CheckInterruptStatus(1); s != NotSet {
		t.Errorf("Interrupt status 1 got: %s", s)
	}
}

func TestReadCounter(t *testing.T) {
	tm, mem := setupInit(t)
	mem.Store(reg.TIMEHR, 0xdeadfade)
	mem.Store(reg.TIMELR, 0xfacebeef)
	var high, low uint32
	if err := tm.Read64(&high, &low); err != nil {
		t.Errorf("Read64 failed: %s", err.Error())
	}
	if high != 0xdeadfade || low != 0xfacebeef {
		t.Errorf("Read64 got: %08x %08x expected: %08x %08x", high, low, 0xdeadfade, 0xfacebeef)
	}
	now, err := tm.Now()
	if err != nil || now != 0xdeadfadefacebeef {
		t.Errorf("Now got: %016x", now)
	}
	if !errors.Is(tm.Read64(nil, &low), ErrInvalidParam) {
		t.Errorf("Read64 accepted nil")
	}
	if !errors.Is(tm.ReadLow(nil), ErrInvalidParam) {
		t.Errorf("ReadLow accepted nil")
	}
	if !errors.Is(tm.ReadHigh(nil), ErrInvalidParam) {
		t.Errorf("ReadHigh accepted nil")
	}
	if !errors.Is(tm.Write64(&high, nil), ErrInvalidParam) {
		t.Errorf("Write64 accepted nil")
	}
	if !errors.Is(tm.ReadRaw32(nil), ErrInvalidParam) {
		t.Errorf("ReadRaw32 accepted nil")
	}

	mem.Store(reg.TIMERAWL, 0x1234)
	if err := tm.ReadRaw32(&low); err != nil || low != 0x1234 {
		t.Errorf("ReadRaw32 got: %x", low)
	}
	mem.Store(reg.TIMERAWH, 0x5678)
	if v := tm.ReadRaw64(); v != 0x0000567800001234 {
		t.Errorf("ReadRaw64 got: %x", v)
	}
}

func TestRegTrace(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	defer debug.SetOutput(nil)

	tm, mem := setup()
	if err := tm.Debug("REG"); err != nil {
		t.Fatalf("Debug failed: %s", err.Error())
	}
	high, low := uint32(2), uint32(5)
	if err := tm.Write64(&high, &low); err != nil {
		t.Errorf("Write64 failed: %s", err.Error())
	}
	if v := mem.Load(reg.TIMELW); v != 5 {
		t.Errorf("TIMELW got: %d expected: %d", v, 5)
	}
	expected := "TIMER: write TIMELW 00000005\nTIMER: write TIMEHW 00000002\n"
	if !strings.Contains(buf.String(), expected) {
		t.Errorf("Trace got: '%s' expected: '%s'", buf.String(), expected)
	}
}

func TestRead64Uninit(t *testing.T) {
	tm, _ := setup()
	var high, low uint32
	err := tm.Read64(&high, &low)
	if !errors.Is(err, ErrModuleUninit) {
		t.Errorf("Read64 got: %v expected: %v", err, ErrModuleUninit)
	}
	if errors.Is(err, ErrInvalidParam) {
		t.Errorf("Read64 reported invalid parameter")
	}
}

func TestCodeMerge(t *testing.T) {
	err := merge(nil, ErrNotOK, nil, ErrInvalidParam)
	if !errors.Is(err, ErrNotOK) || !errors.Is(err, ErrInvalidParam) {
		t.Errorf("Merged code missing bits: %v", err)
	}
	if errors.Is(err, ErrModuleUninit) {
		t.Errorf("Merged code has extra bit: %v", err)
	}
	if merge(nil, nil) != nil {
		t.Errorf("Merge of nil not nil")
	}
	if merge(errors.New("other")) != ErrNotOK {
		t.Errorf("Foreign error not mapped to ErrNotOK")
	}
	if err.Error() != "timer: operation failed, invalid parameter" {
		t.Errorf("Error text got: %s", err.Error())
	}
}

func TestDebugOption(t *testing.T) {
	tm, _ := setup()
	if err := tm.Debug("ALARM"); err != nil {
		t.Errorf("Debug ALARM failed: %s", err.Error())
	}
	if err := tm.Debug("NONE"); err == nil {
		t.Errorf("Debug accepted invalid option")
	}
	if len(DebugOptions()) != 5 {
		t.Errorf("Debug options got: %d", len(DebugOptions()))
	}
}

// Driver running against the peripheral model.
func setupModel(t *testing.T) (*Timer, *rp2040.Timer) {
	t.Helper()
	ticks := &tickStub{running: true}
	model := rp2040.New(ticks)
	tm := New(model, ticks)
	if err := tm.Init(); err != nil {
		t.Fatalf("Init failed: %s", err.Error())
	}
	return tm, model
}

func TestWriteReadModel(t *testing.T) {
	tm, _ := setupModel(t)
	values := [][2]uint32{
		{0, 0},
		{0xffffffff, 0xffffffff},
		{0, 0xffffffff},
		{0x12345678, 0x9abcdef0},
	}
	for _, v := range values {
		high, low := v[0], v[1]
		if err := tm.Write64(&high, &low); err != nil {
			t.Errorf("Write64 failed: %s", err.Error())
		}
		var rh, rl uint32
		if err := tm.Read64(&rh, &rl); err != nil {
			t.Errorf("Read64 failed: %s", err.Error())
		}
		if rh != v[0] || rl != v[1] {
			t.Errorf("Round trip got: %08x %08x expected: %08x %08x", rh, rl, v[0], v[1])
		}
	}
}

func TestAlarmModel(t *testing.T) {
	tm, model := setupModel(t)
	if s := tm.CheckStatus(0); s != SetNotTriggered {
		t.Errorf("Heartbeat alarm got: %s expected: %s", s, SetNotTriggered)
	}
	if err := tm.EnableInterrupts(reg.AlarmBit(0) | reg.AlarmBit(1)); err != nil {
		t.Errorf("EnableInterrupts failed: %s", err.Error())
	}
	if err := tm.Arm(1, 500); err != nil {
		t.Errorf("Arm failed: %s", err.Error())
	}
	model.Advance(499)
	if s := tm.CheckStatus(1); s != SetNotTriggered {
		t.Errorf("Alarm 1 early got: %s", s)
	}
	model.Advance(1)
	if s := tm.CheckStatus(1); s != Triggered {
		t.Errorf("Alarm 1 got: %s expected: %s", s, Triggered)
	}
	if !model.IRQ() {
		t.Errorf("Interrupt line not set")
	}
	if err := tm.ClearInterrupt(1); err != nil {
		t.Errorf("ClearInterrupt failed: %s", err.Error())
	}
	if s := tm.CheckStatus(1); s != NotSet {
		t.Errorf("Cleared alarm got: %s expected: %s", s, NotSet)
	}
	model.Advance(500)
	if s := tm.CheckStatus(0); s != Triggered {
		t.Errorf("Heartbeat got: %s expected: %s", s, Triggered)
	}

	if err := tm.Arm(2, 5000); err != nil {
		t.Errorf("Arm failed: %s", err.Error())
	}
	if err := tm.Disarm(2); err != nil {
		t.Errorf("Disarm failed: %s", err.Error())
	}
	model.Advance(10000)
	if s := tm.CheckStatus(2); s != NotSet {
		t.Errorf("Disarmed alarm got: %s expected: %s", s, NotSet)
	}
}

func TestDisarmModel(t *testing.T) {
	tm, model := setupModel(t)
	if err := tm.Arm(1, 300); err != nil {
		t.Errorf("Arm failed: %s", err.Error())
	}
	if err := tm.Arm(2, 400); err != nil {
		t.Errorf("Arm failed: %s", err.Error())
	}
	if err := tm.Disarm(1); err != nil {
		t.Errorf("Disarm failed: %s", err.Error())
	}
	if v := model.Load(reg.ARMED); v != reg.AlarmBit(0)|reg.AlarmBit(2) {
		t.Errorf("Armed after disarm got: %x expected: %x", v, reg.AlarmBit(0)|reg.AlarmBit(2))
	}
	for _, n := range []uint8{0, 2} {
		if s := tm.CheckStatus(n); s != SetNotTriggered {
			t.Errorf("Alarm %d after disarm got: %s expected: %s", n, s, SetNotTriggered)
		}
	}
	if s := tm.CheckStatus(1); s != NotSet {
		t.Errorf("Disarmed alarm got: %s expected: %s", s, NotSet)
	}
}

func TestAckModel(t *testing.T) {
	tm, model := setupModel(t)
	if err := tm.EnableInterrupts(reg.AlarmMask); err != nil {
		t.Errorf("EnableInterrupts failed: %s", err.Error())
	}
	if err := tm.Arm(1, 200); err != nil {
		t.Errorf("Arm failed: %s", err.Error())
	}
	model.Advance(1000)
	if err := tm.AckInterrupt(0); err != nil {
		t.Errorf("AckInterrupt failed: %s", err.Error())
	}
	if s := tm.CheckInterruptStatus(0); s != NotSet {
		t.Errorf("Acknowledged heartbeat got: %s expected: %s", s, NotSet)
	}
	if s := tm.CheckStatus(1); s != Triggered {
		t.Errorf("Alarm 1 after ack got: %s expected: %s", s, Triggered)
	}
	if !errors.Is(tm.AckInterrupt(4), ErrInvalidParam) {
		t.Errorf("AckInterrupt 4 accepted")
	}
}

func TestPauseModel(t *testing.T) {
	tm, model := setupModel(t)
	if err := tm.Pause(); err != nil {
		t.Errorf("Pause failed: %s", err.Error())
	}
	if model.Advance(100) != 0 {
		t.Errorf("Paused counter moved")
	}
	if err := tm.Unpause(); err != nil {
		t.Errorf("Unpause failed: %s", err.Error())
	}
	model.Advance(100)
	var low uint32
	if err := tm.ReadRaw32(&low); err != nil || low != 100 {
		t.Errorf("Raw counter got: %d expected: %d", low, 100)
	}
	if err := tm.Deinit(); err != nil {
		t.Errorf("Deinit failed: %s", err.Error())
	}
	if s := tm.CheckStatus(0); s != NotSet {
		t.Errorf("Heartbeat after deinit got: %s", s)
	}
}
