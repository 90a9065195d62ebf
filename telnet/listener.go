/*
 * RP2040 - Telnet listener for remote console.
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
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	config "github.com/rcornwell/RP2040/config/configparser"
	"github.com/rcornwell/RP2040/emu/core"
)

type Server struct {
	wg         sync.WaitGroup
	listener   net.Listener
	shutdown   chan struct{}
	connection chan net.Conn
	monitor    *core.Core
}

var (
	portLock    sync.Mutex
	defaultPort string
)

// register a device on initialize.
func init() {
	config.RegisterOption("TELNET", setPort)
}

// Set console port.
func setPort(port string, _ []config.Option) error {
	num, err := strconv.ParseUint(port, 10, 16)
	if err != nil || num == 0 {
		return errors.New("telnet port must be a number: " + port)
	}
	portLock.Lock()
	defaultPort = port
	portLock.Unlock()
	return nil
}

// Return port set in configuration, empty if none.
func Port() string {
	portLock.Lock()
	defer portLock.Unlock()
	return defaultPort
}

// Open new listener.
func newServer(address string) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on address %s: %w", address, err)
	}

	return &Server{
		listener:   listener,
		shutdown:   make(chan struct{}),
		connection: make(chan net.Conn),
	}, nil
}

// Accept a connection.
func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				continue
			}
		}
		select {
		case s.connection <- conn:
		case <-s.shutdown:
			conn.Close()
			return
		}
	}
}

// Start processing for a new connection.
func (s *Server) handleConnections() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			return
		case conn := <-s.connection:
			slog.Info("Console connection", "from", conn.RemoteAddr().String())
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				handleClient(conn, s.monitor)
			}()
		}
	}
}

// Start a new server on address.
func Start(address string, monitor *core.Core) (*Server, error) {
	s, err := newServer(address)
	if err != nil {
		return nil, err
	}
	s.monitor = monitor
	slog.Info("Console server started", "address", s.listener.Addr().String())

	s.wg.Add(2)
	go s.acceptConnections()
	go s.handleConnections()
	return s, nil
}

// Return address server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop a running server. Open sessions end when their client goes away.
func (s *Server) Stop() {
	slog.Info("Shutdown console server", "address", s.listener.Addr().String())
	close(s.shutdown)
	s.listener.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for connections to finish.")
		return
	}
}
