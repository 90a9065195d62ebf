/*
 * RP2040 - Command parser.
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
	"io"
	"os"
	"strings"
	"unicode"

	command "github.com/rcornwell/RP2040/command/command"
	core "github.com/rcornwell/RP2040/emu/core"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine, *core.Core) []string
}

type cmdLine struct {
	line string    // Current command.
	pos  int       // Position in line.
	out  io.Writer // Where command output goes.
}

// Where console command output goes.
var output io.Writer = os.Stdout

// Execute the command line given.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	return Execute(output, commandLine, core)
}

// Execute the command line, writing output to out.
func Execute(out io.Writer, commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine, out: out}
	command := line.getWord(false)
	if command == "" {
		if !line.isEOL() {
			return false, errors.New("command must start with a name")
		}
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	if !strings.HasPrefix(match.Name, command) {
		return false
	}
	return len(command) >= match.Min || len(command) == len(match.Name)
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	// If command empty just return.
	if command == "" {
		return []cmd{}
	}

	// Exact match wins.
	for _, m := range cmdList {
		if m.Name == command {
			return []cmd{m}
		}
	}

	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Match list of options.
func matchOption(option string, optList []command.Options, cmdType int) command.Options {
	for _, opt := range optList {
		if (opt.OptionValid & cmdType) == 0 {
			continue
		}
		if opt.Name == option {
			return opt
		}
	}
	return command.Options{OptionType: -1}
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Check that nothing but a comment follows.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("unexpected text: " + line.line[line.pos:])
	}
	return nil
}

// Parse a number, decimal or hex with 0x in front.
func (line *cmdLine) getNumber() (uint32, error) {
	line.skipSpace()

	// Check if end of line.
	if line.isEOL() {
		return 0, errors.New("number required")
	}

	pos := line.pos
	base := uint64(10)
	if strings.HasPrefix(strings.ToLower(line.line[pos:]), "0x") {
		base = 16
		line.pos += 2
	}

	value := uint64(0)
	digits := 0
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) {
			break
		}
		digit := strings.IndexByte(hexDigits, byte(unicode.ToLower(rune(by))))
		if digit < 0 || uint64(digit) >= base {
			line.pos = pos
			return 0, errors.New("not a number: " + line.word(pos))
		}
		value = (value * base) + uint64(digit)
		if value > 0xffffffff {
			line.pos = pos
			return 0, errors.New("number too large: " + line.word(pos))
		}
		digits++
		line.pos++
	}

	if digits == 0 {
		line.pos = pos
		return 0, errors.New("not a number: " + line.word(pos))
	}
	return uint32(value), nil
}

const hexDigits = "0123456789abcdef"

// Return text from pos to next space.
func (line *cmdLine) word(pos int) string {
	end := pos
	for end < len(line.line) && !unicode.IsSpace(rune(line.line[end])) {
		end++
	}
	return line.line[pos:end]
}

// Parse option name.
// Stops at equal sign if equal is true.
func (line *cmdLine) getWord(equal bool) string {
	line.skipSpace()

	// Characters must be alphabetic
	value := ""
	pos := line.pos
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) {
			break
		}
		if by == '=' && equal {
			break
		}
		if !unicode.IsLetter(rune(by)) {
			line.pos = pos
			return ""
		}
		value += string([]byte{by})
		line.pos++
	}

	return strings.ToLower(value)
}

// Get an option.
func (line *cmdLine) getOption(opts []command.Options, cmdType int) (*command.CmdOption, error) {
	// Get a word, stoping at equal or space.
	name := line.getWord(true)
	if name == "" {
		if !line.isEOL() {
			return nil, errors.New("invalid option: " + line.word(line.pos))
		}
		return nil, nil
	}

	opt := command.CmdOption{Name: name}
	match := matchOption(name, opts, cmdType)
	switch match.OptionType {
	case -1:
		return nil, errors.New("unknown option: " + name)
	case command.OptionSwitch:
		if !line.isEOL() && line.line[line.pos] == '=' {
			return nil, errors.New("switch option can't have arguments: " + name)
		}
	case command.OptionList:
		if line.getCurrent() != '=' {
			return nil, errors.New("option must be followed by name: " + name)
		}
		value := line.getWord(false)
		if value == "" {
			return nil, errors.New("option must be followed by name: " + name)
		}
		if !containsFold(match.OptionList, value) {
			return nil, errors.New("option " + name + " invalid value: " + value)
		}
		opt.EqualOpt = value
	}
	return &opt, nil
}

// Check if list has value ignoring case.
func containsFold(list []string, value string) bool {
	for _, s := range list {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

// Collect options for set or show command.
func (line *cmdLine) getOptions(cmd command.Command, cmdType int) ([]*command.CmdOption, error) {
	opts := cmd.Options("")
	optlist := []*command.CmdOption{}
	for {
		opt, err := line.getOption(opts, cmdType)
		if err != nil {
			return optlist, err
		}
		if opt == nil {
			break
		}
		optlist = append(optlist, opt)
	}
	return optlist, nil
}
