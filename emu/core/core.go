/*
 * RP2040 - Core timer monitor loop
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
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/RP2040/emu/master"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/rp2040"
	"github.com/rcornwell/RP2040/emu/timer"
)

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown monitor.
	running bool          // Indicate when clock ticks advance timer.
	Master  chan master.Packet
	drv     *timer.Timer
	model   *rp2040.Timer // Nil when driving real hardware.
	beats   uint64        // Number of heartbeats seen.
}

// Create monitor core. Model may be nil if the driver is attached to
// real registers, time then moves on its own.
func NewCore(masterChannel chan master.Packet, drv *timer.Timer, model *rp2040.Timer) *Core {
	return &Core{
		Master: masterChannel,
		drv:    drv,
		model:  model,
		done:   make(chan struct{}),
	}
}

// Run core, all access to the driver happens on this routine.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		}
	}
}

// Stop a running core.
func (core *Core) Stop() {
	slog.Info("Shutting down core")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for core to finish.")
		return
	}
}

// Let clock ticks advance timer.
func (core *Core) SendStart() {
	core.Master <- master.Packet{Msg: master.Start}
}

// Stop clock ticks advancing timer.
func (core *Core) SendStop() {
	core.Master <- master.Packet{Msg: master.Stop}
}

// Advance timer by count ticks and wait for it to finish.
func (core *Core) Step(count uint64) {
	done := make(chan bool, 1)
	core.Master <- master.Packet{Msg: master.Step, Count: count, Done: done}
	<-done
}

// Run fn with the driver on the core routine and return its error.
func (core *Core) Do(fn func(drv *timer.Timer) error) error {
	var err error
	done := make(chan bool, 1)
	core.Master <- master.Packet{Msg: master.Command, Done: done, Fn: func() {
		err = fn(core.drv)
	}}
	<-done
	return err
}

// Initialize timer and enable the heartbeat interrupt.
func (core *Core) InitTimer() error {
	return core.Do(func(drv *timer.Timer) error {
		if err := drv.Init(); err != nil {
			return err
		}
		return drv.EnableInterrupts(reg.AlarmBit(0))
	})
}

// Return true if a model is attached.
func (core *Core) Emulated() bool {
	return core.model != nil
}

// Process a packet sent to core.
func (core *Core) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.TimeClock:
		if core.running {
			core.advance(packet.Count)
		}
	case master.Step:
		core.advance(packet.Count)
	case master.Start:
		core.running = true
	case master.Stop:
		core.running = false
	case master.Command:
		if packet.Fn != nil {
			packet.Fn()
		}
	}
	if packet.Done != nil {
		packet.Done <- true
	}
}

// Move timer forward, stopping at each heartbeat so it can be re-armed.
func (core *Core) advance(count uint64) {
	if core.model == nil {
		core.heartbeat()
		return
	}
	for count != 0 {
		step := min(count, uint64(timer.DefaultHeartbeat))
		trigger := core.drv.AlarmTime(0)
		if trigger != 0 {
			distance := uint64(trigger - uint32(core.model.Counter()))
			if distance != 0 && distance < step {
				step = distance
			}
		}
		if core.model.Advance(step) == 0 {
			break
		}
		count -= step
		core.rearm(trigger)
	}
}

// Check heartbeat against a free running counter.
func (core *Core) heartbeat() {
	var low uint32
	if core.drv.ReadRaw32(&low) != nil {
		return
	}
	core.rearm(low)
}

// If alarm 0 fired, acknowledge it and arm it one heartbeat after last.
func (core *Core) rearm(last uint32) {
	if !core.drv.Initialized() || core.drv.CheckStatus(0) != timer.Triggered {
		return
	}
	next := last + timer.DefaultHeartbeat
	if next == 0 {
		next = 1
	}
	err := errors.Join(core.drv.AckInterrupt(0), core.drv.Arm(0, next))
	if err != nil {
		slog.Warn("Heartbeat re-arm failed", "error", err)
		return
	}
	core.beats++
	slog.Debug("Heartbeat", "count", core.beats, "next", next)
}

// Return number of heartbeats seen, must be called on core routine.
func (core *Core) Beats() uint64 {
	return core.beats
}
