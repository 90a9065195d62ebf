/*
 * RP2040 - Debug configuration directive.
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

package debugconfig

import (
	"errors"
	"strings"
	"sync"

	config "github.com/rcornwell/RP2040/config/configparser"
)

var (
	mu      sync.Mutex
	modules = map[string]func(string) error{}
)

// register a device on initialize.
func init() {
	config.RegisterOptions("DEBUG", setDebug)
}

// Register debug function for module name. Must be done before the
// configuration file is loaded.
func Register(name string, fn func(string) error) {
	mu.Lock()
	defer mu.Unlock()
	modules[strings.ToUpper(name)] = fn
}

// Remove all registered modules.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	modules = map[string]func(string) error{}
}

// Process DEBUG <module> <flag>,<flag> ...
func setDebug(module string, options []config.Option) error {
	mu.Lock()
	fn, ok := modules[strings.ToUpper(module)]
	mu.Unlock()
	if !ok {
		return errors.New("debug option invalid: " + module)
	}

	for _, opt := range options {
		err := fn(strings.ToUpper(opt.Name))
		if err != nil {
			return err
		}
		for _, value := range opt.Value {
			err = fn(strings.ToUpper(*value))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
