// Package forwarder wires the frame, packet, and handlers packages into
// the running pipeline: three goroutines per direction relaying one
// client's traffic to one server, and the supervisor that accepts
// connections and stands up a Forwarder pair for each.
package forwarder

import (
	"errors"
	"io"
	"log"
	"net"

	"github.com/mcproxy/core/frame"
	"github.com/mcproxy/core/handlers"
	"github.com/mcproxy/core/packet"
	"github.com/mcproxy/core/proto"
	"github.com/mcproxy/core/session"
)

// Forwarder relays one direction of one connection: receive reads frames
// off the source socket and decodes them into packets, process runs the
// handler dispatch table and may inject additional packets, and send packs
// and writes whatever process produced to the destination socket.
type Forwarder struct {
	direction proto.Direction
	src       net.Conn
	dst       net.Conn
	sess      *session.Session

	// in holds packets this Forwarder's own receive stage decoded; out
	// holds packets (including injected ones from the opposite
	// direction) this Forwarder's send stage still needs to write.
	in  *packet.Queue
	out *packet.Queue

	// oppositeOut is the sibling Forwarder's out queue, for packets that
	// surface travelling the opposite direction during packing. Set by
	// the Supervisor once both Forwarders of a connection exist.
	oppositeOut *packet.Queue

	logger *log.Logger
	debug  bool
}

// SetOppositeOut wires this Forwarder to its sibling's out queue.
func (f *Forwarder) SetOppositeOut(q *packet.Queue) {
	f.oppositeOut = q
}

// New builds a Forwarder for one direction, with its own in/out queues.
// Call SetOppositeOut once both Forwarders of a connection exist so each
// can inject packets into the other's outgoing stream.
func New(direction proto.Direction, src, dst net.Conn, sess *session.Session, logger *log.Logger, debug bool) *Forwarder {
	return &Forwarder{
		direction: direction,
		src:       src,
		dst:       dst,
		sess:      sess,
		in:        packet.NewQueue(),
		out:       packet.NewQueue(),
		logger:    logger,
		debug:     debug,
	}
}

// Out returns this Forwarder's outgoing queue, for wiring as the sibling
// Forwarder's oppositeOut.
func (f *Forwarder) Out() *packet.Queue {
	return f.out
}

// Run starts the receive, process, and send goroutines and returns
// immediately; all three run until a fatal error or a StopSignal
// propagates through, at which point this Forwarder shuts down the whole
// session.
func (f *Forwarder) Run() {
	go f.receive()
	go f.process()
	go f.send()
}

func (f *Forwarder) logf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Printf("[%s] "+format, append([]any{f.direction}, args...)...)
	}
}

func (f *Forwarder) debugf(format string, args ...any) {
	if f.debug {
		f.logf(format, args...)
	}
}

// receive reads frames off src, decodes them into Packets, and hands them
// to the process stage one at a time. A decode error or closed socket
// shuts down the whole session; the legacy ping escape hatch and
// decompression fallback are handled inside frame.ReadFrame and never
// reach here as errors.
func (f *Forwarder) receive() {
	for {
		if f.sess.IsShutdown() {
			return
		}
		phase := f.sess.Phase()
		result, err := frame.ReadFrame(f.src, phase, f.direction, f.sess.CompressionEnabled(), f.logger)
		if err != nil {
			if !isClosedOrEOF(err) {
				f.logf("receive: %v", err)
			}
			f.in.AppendOne(packet.StopSignal{})
			f.sess.Shutdown()
			return
		}
		if result.LegacyPing {
			f.debugf("legacy ping received, no packet emitted")
			continue
		}
		p, err := packet.New(f.direction, result.Data)
		if err != nil {
			f.logf("receive: decode packet: %v", err)
			f.in.AppendOne(packet.StopSignal{})
			f.sess.Shutdown()
			return
		}
		f.in.AppendOne(p)
	}
}

// process drains in, runs each packet through the handler dispatch table,
// and re-queues the whole batch onto out (this direction's own packets
// plus anything handlers injected) for the send stage — of this Forwarder
// or, for opposite-direction injections, of its sibling.
func (f *Forwarder) process() {
	for {
		items := f.in.PopAll()
		var batch []any
		stop := false
		for _, item := range items {
			switch v := item.(type) {
			case *packet.Packet:
				phase := f.sess.Phase()
				if err := handlers.Dispatch(phase, v, f.sess); err != nil {
					f.logf("process: handler error: %v", err)
					stop = true
					continue
				}
				batch = append(batch, v)
			case packet.StopSignal:
				stop = true
			case packet.PreferenceUpdate:
				for _, synth := range handlers.ResolvePreferenceUpdate(v, f.sess) {
					if synth.Direction == f.direction {
						batch = append(batch, synth)
					} else if f.oppositeOut != nil {
						f.oppositeOut.AppendOne(synth)
					}
				}
			}
		}
		if len(batch) > 0 {
			f.out.AppendAll(batch)
		}
		if stop {
			f.out.AppendOne(packet.StopSignal{})
			f.sess.Shutdown()
			return
		}
	}
}

// send drains out, packing every packet travelling in this Forwarder's own
// direction into a sequence of complete frames written to dst in one call,
// and forwarding anything travelling the opposite direction to the sibling
// Forwarder's out queue.
func (f *Forwarder) send() {
	for {
		packed, rest, stop, err := f.out.PackAll(f.direction, f.sess.CompressionEnabled(), f.sess.CompressionThreshold())
		if err != nil {
			f.logf("send: %v", err)
			f.sess.Shutdown()
			return
		}
		if len(packed) > 0 {
			if _, err := f.dst.Write(packed); err != nil {
				f.logf("send: %v", err)
				f.sess.Shutdown()
				return
			}
		}
		if len(rest) > 0 && f.oppositeOut != nil {
			f.oppositeOut.AppendAll(rest)
		}
		if stop {
			f.sess.Shutdown()
			return
		}
		if f.sess.IsShutdown() {
			return
		}
	}
}

func isClosedOrEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
