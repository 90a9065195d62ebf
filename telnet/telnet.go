/*
 * RP2040 - Telnet protocol for remote console.
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

package telnet

import (
	"bytes"
	"log/slog"
	"net"

	"github.com/rcornwell/RP2040/command/parser"
	"github.com/rcornwell/RP2040/emu/core"
)

// Telnet protocol constants.
const (
	tnIAC  byte = 255 // protocol delim
	tnDONT byte = 254 // dont
	tnDO   byte = 253 // do
	tnWONT byte = 252 // wont
	tnWILL byte = 251 // will
	tnSB   byte = 250 // Sub negotiations begin
	tnIP   byte = 244 // Interrupt process
	tnBRK  byte = 243 // break
	tnSE   byte = 240 // Sub negotiations end

	// Telnet line states.
	tnStateData int = 1 + iota // normal
	tnStateIAC                 // IAC seen
	tnStateWILL                // WILL seen
	tnStateDO                  // DO seen
	tnStateDONT                // DONT seen
	tnStateWONT                // WONT seen
	tnStateSB                  // In sub negotiation
	tnStateSBIAC               // IAC seen in sub negotiation
	tnStateCR                  // CR seen

	// Telnet options.
	tnOptionSGA byte = 3 // Suppress Go Ahead

	// Telnet flags.
	tnFlagDo   uint8 = 0x01 // Do sent
	tnFlagDont uint8 = 0x02 // Don't sent
	tnFlagWill uint8 = 0x04 // Will sent
	tnFlagWont uint8 = 0x08 // Wont sent
)

const prompt = "RP2040> "

type tnState struct {
	optionState [256]uint8 // Options already answered.
	state       int        // Current line State
	line        []byte     // Line being collected.
	conn        net.Conn   // Client connection.
}

// Send option response once.
func (state *tnState) sendOption(setState, option byte) {
	var flag uint8
	switch setState {
	case tnWILL:
		flag = tnFlagWill
	case tnWONT:
		flag = tnFlagWont
	case tnDO:
		flag = tnFlagDo
	case tnDONT:
		flag = tnFlagDont
	}
	if (state.optionState[option] & flag) != 0 {
		return
	}
	state.optionState[option] |= flag
	_, _ = state.conn.Write([]byte{tnIAC, setState, option})
}

// Open negotiation with client.
func (state *tnState) start() {
	state.sendOption(tnWILL, tnOptionSGA)
}

// Handle DO request, only suppress go ahead is supported.
func (state *tnState) handleDO(input byte) {
	if input == tnOptionSGA {
		state.sendOption(tnWILL, input)
		return
	}
	state.sendOption(tnWONT, input)
}

// Handle WILL request, client options are refused.
func (state *tnState) handleWILL(input byte) {
	if input == tnOptionSGA {
		state.sendOption(tnDO, input)
		return
	}
	state.sendOption(tnDONT, input)
}

// Process input from client, returns completed lines.
func (state *tnState) input(data []byte) []string {
	lines := []string{}
	for _, by := range data {
		switch state.state {
		case tnStateData, tnStateCR:
			lastCR := state.state == tnStateCR
			state.state = tnStateData
			switch by {
			case tnIAC:
				state.state = tnStateIAC
			case '\r':
				lines = append(lines, string(state.line))
				state.line = state.line[:0]
				state.state = tnStateCR
			case '\n':
				// LF after CR already ended line.
				if !lastCR {
					lines = append(lines, string(state.line))
					state.line = state.line[:0]
				}
			case 0:
			case '\b', 0x7f:
				if len(state.line) != 0 {
					state.line = state.line[:len(state.line)-1]
				}
			default:
				state.line = append(state.line, by)
			}

		case tnStateIAC: // IAC seen
			state.state = tnStateData
			switch by {
			case tnIAC:
				state.line = append(state.line, by)
			case tnWILL:
				state.state = tnStateWILL
			case tnWONT:
				state.state = tnStateWONT
			case tnDO:
				state.state = tnStateDO
			case tnDONT:
				state.state = tnStateDONT
			case tnSB:
				state.state = tnStateSB
			case tnIP, tnBRK:
				state.line = state.line[:0]
			}

		case tnStateWILL:
			state.handleWILL(by)
			state.state = tnStateData

		case tnStateWONT:
			state.sendOption(tnDONT, by)
			state.state = tnStateData

		case tnStateDO:
			state.handleDO(by)
			state.state = tnStateData

		case tnStateDONT:
			state.sendOption(tnWONT, by)
			state.state = tnStateData

		case tnStateSB:
			if by == tnIAC {
				state.state = tnStateSBIAC
			}

		case tnStateSBIAC:
			state.state = tnStateSB
			if by == tnSE {
				state.state = tnStateData
			}
		}
	}
	return lines
}

// Run console session for one client.
func handleClient(conn net.Conn, monitor *core.Core) {
	defer conn.Close()

	state := tnState{conn: conn, state: tnStateData}
	buffer := make([]byte, 1024)

	state.start()
	_, _ = conn.Write([]byte(prompt))
	for {
		num, err := conn.Read(buffer)
		if err != nil {
			slog.Debug("Telnet read", "error", err)
			return
		}
		for _, line := range state.input(buffer[:num]) {
			var out bytes.Buffer
			quit, err := parser.Execute(&out, line, monitor)
			if err != nil {
				out.WriteString("Error: " + err.Error() + "\n")
			}
			_, _ = conn.Write(bytes.ReplaceAll(out.Bytes(), []byte("\n"), []byte("\r\n")))
			if quit {
				return
			}
			_, _ = conn.Write([]byte(prompt))
		}
	}
}
