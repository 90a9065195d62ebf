/*
 * RP2040 - Configuration file parser
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <name> |
 *           <name> <whitespace> <value> |
 *           <name> <whitespace> <value> <whitespace> <options> |
 *           <name> <whitespace> <quoteopt>
 * <options> ::= *(<option> *(<whitespace>))
 * <option> ::= <string> ['=' <quoteopt>] *(<commaopt>)
 * <commaopt> ::= ',' *(<whitespace>) <string>
 * <quoteopt> ::= <string> | '"' *(<letter> | <whitespace>) '"'
 * <value> ::= *(<letter> | <number>)
 * <string> ::= <letter> *(<letter> | <number>)
 */

const (
	TypeOption  = 1 + iota // Accepts a option parameter.
	TypeOptions            // Accepts a parameter and a list of options.
	TypeSwitch             // Option only used to set a flag.
	TypeFile               // Accepts a file name.
)

// Directive creation list.
type modelDef struct {
	create func(string, []Option) error
	ty     int
}

var models = map[string]modelDef{}

var lineNumber int

// Return type of directive or 0 if not registered.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

func register(mod string, ty int, fn func(string, []Option) error) {
	mod = strings.ToUpper(mod)
	models[mod] = modelDef{create: fn, ty: ty}
}

// Register should be called from init functions.
func RegisterOption(mod string, fn func(string, []Option) error) {
	register(mod, TypeOption, fn)
}

// Register should be called from init functions.
func RegisterOptions(mod string, fn func(string, []Option) error) {
	register(mod, TypeOptions, fn)
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn func(string, []Option) error) {
	register(mod, TypeSwitch, fn)
}

// Register should be called from init functions.
func RegisterFile(mod string, fn func(string, []Option) error) {
	register(mod, TypeFile, fn)
}

// Create a directive of the given type.
func create(mod string, ty int, value string, options []Option) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown option: " + mod)
	}
	if model.ty != ty {
		return errors.New("Option used with wrong type: " + mod)
	}
	return model.create(value, options)
}

// Load in a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Load configuration from a reader.
func LoadConfig(in io.Reader) error {
	lineNumber = 0
	reader := bufio.NewReader(in)
	for {
		var err error

		line := optionLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		line.line = strings.TrimRight(line.line, "\r\n")
		err = line.parseLine()
		if err != nil {
			return err
		}
	}
	return nil
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	name := line.parseName()
	if name == "" {
		if !line.isEOL() {
			return fmt.Errorf("Invalid directive line: %d", lineNumber)
		}
		return nil
	}

	switch getModel(name) {
	case TypeOption:
		value := line.parseValue()
		line.skipSpace()
		if !line.isEOL() || value == "" {
			return fmt.Errorf("Option: %s not followed by value, line: %d", name, lineNumber)
		}
		return create(name, TypeOption, value, nil)

	case TypeOptions:
		value := line.parseValue()
		if value == "" {
			return fmt.Errorf("Option: %s not followed by value, line: %d", name, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return create(name, TypeOptions, value, options)

	case TypeFile:
		line.skipSpace()
		if line.isEOL() {
			return fmt.Errorf("Option: %s requires file name, line: %d", name, lineNumber)
		}
		file, ok := line.parseQuoteString()
		line.skipSpace()
		if !ok || file == "" || !line.isEOL() {
			return fmt.Errorf("Option: %s invalid file name, line: %d", name, lineNumber)
		}
		return create(name, TypeFile, file, nil)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("Switch Option: %s followed by options, line: %d", name, lineNumber)
		}
		return create(name, TypeSwitch, "", nil)
	}
	return fmt.Errorf("No type: %s registered, line: %d", name, lineNumber)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Collect letters and digits.
func (line *optionLine) collect() string {
	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if !unicode.IsLetter(rune(by)) && !unicode.IsNumber(rune(by)) {
			break
		}
		value += string([]byte{by})
		line.pos++
	}
	return value
}

// Parse directive name.
func (line *optionLine) parseName() string {
	line.skipSpace()
	return strings.ToUpper(line.collect())
}

// Parse first option parameter.
func (line *optionLine) parseValue() string {
	line.skipSpace()
	return line.collect()
}

// Parse string that is "string" or just string.
func (line *optionLine) parseQuoteString() (string, bool) {
	if line.isEOL() {
		return "", true
	}

	if line.line[line.pos] != '"' {
		value := ""
		for !line.isEOL() {
			by := line.line[line.pos]
			if unicode.IsSpace(rune(by)) || by == ',' {
				break
			}
			value += string([]byte{by})
			line.pos++
		}
		return value, true
	}

	// Quoted string, "" gets replaced by single quote.
	line.pos++
	value := ""
	for line.pos < len(line.line) {
		by := line.line[line.pos]
		line.pos++
		if by == '"' {
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				line.pos++
			} else {
				return value, true
			}
		}
		value += string([]byte{by})
	}
	return value, false
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("Invalid option encountered line: %d [%d]", lineNumber, line.pos)
	}
	return line.collect(), nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	line.skipSpace()

	value, err := line.getName()
	if value == "" {
		return nil, err
	}

	option := Option{Name: value}

	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		line.pos++
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, fmt.Errorf("Invalid quoted string line: %d [%d]", lineNumber, line.pos)
		}
		option.EqualOpt = v
	}

	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}
