/*
 * RP2040 - Main process.
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

package main

import (
	"errors"
	"log/slog"
	"os"
	"slices"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/RP2040/command/reader"
	config "github.com/rcornwell/RP2040/config/configparser"
	debugconfig "github.com/rcornwell/RP2040/config/debugconfig"
	timerconfig "github.com/rcornwell/RP2040/config/timerconfig"
	core "github.com/rcornwell/RP2040/emu/core"
	master "github.com/rcornwell/RP2040/emu/master"
	reg "github.com/rcornwell/RP2040/emu/register"
	"github.com/rcornwell/RP2040/emu/rp2040"
	"github.com/rcornwell/RP2040/emu/ticks"
	"github.com/rcornwell/RP2040/emu/timer"
	telnet "github.com/rcornwell/RP2040/telnet"
	logger "github.com/rcornwell/RP2040/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "RP2040.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optDevMem := getopt.BoolLong("devmem", 'm', "Use timer registers through /dev/mem")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	handler := logger.NewHandler(nil, &slog.HandlerOptions{Level: slog.LevelDebug}, optDebug)
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("Unable to create log file", "file", *optLogFile)
			os.Exit(1)
		}
		defer file.Close()
		handler = logger.NewHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}, optDebug)
	}
	Logger := slog.New(handler)
	slog.SetDefault(Logger)

	Logger.Info("RP2040 timer monitor started")

	gen := ticks.NewGenerator()
	model := rp2040.New(gen)
	debugconfig.Register("RP2040", model.Debug)

	// Driver does not exist until configuration is read.
	timerDebug := []string{}
	debugconfig.Register("TIMER", func(flag string) error {
		if !slices.Contains(timer.DebugOptions(), flag) {
			return errors.New("timer debug option invalid: " + flag)
		}
		timerDebug = append(timerDebug, flag)
		return nil
	})

	_, err := os.Stat(*optConfig)
	switch {
	case err == nil:
		err = config.LoadConfigFile(*optConfig)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	case os.IsNotExist(err):
		Logger.Warn("Configuration file can't be found, using defaults", "file", *optConfig)
	default:
		Logger.Error(err.Error())
		os.Exit(1)
	}

	settings := timerconfig.Get()
	if settings.Cycles != 0 {
		if err := gen.Enable(settings.Cycles); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	var regs reg.File = model
	var src timer.TickSource = gen
	if *optDevMem {
		devMem, err := reg.OpenDevMem("/dev/mem", settings.Base)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		defer devMem.Close()
		regs = devMem
		src = ticks.Always{}
		model = nil
	}

	drv := timer.New(regs, src)
	drv.SetLogger(Logger)
	for _, flag := range timerDebug {
		if err := drv.Debug(flag); err != nil {
			Logger.Warn("Timer debug option ignored", "error", err)
		}
	}

	masterChannel := make(chan master.Packet)

	// Create new routine to run timer.
	monitor := core.NewCore(masterChannel, drv, model)
	go monitor.Start()

	clock := ticks.NewClock(masterChannel, settings.Interval)
	clock.Start()
	Logger.Debug("Clock started", "interval", clock.Interval())

	if settings.AutoInit {
		if err := monitor.InitTimer(); err != nil {
			Logger.Error("Timer init failed", "error", err)
		} else {
			monitor.SendStart()
		}
	}

	// Start remote console.
	var server *telnet.Server
	if port := telnet.Port(); port != "" {
		server, err = telnet.Start(":"+port, monitor)
		if err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(monitor)
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	if server != nil {
		server.Stop()
	}
	clock.Shutdown()
	monitor.Stop()
	Logger.Info("Monitor stopped.")
}
