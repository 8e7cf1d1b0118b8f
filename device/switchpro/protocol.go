package switchpro

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mifanbang/hidxpad/iocore"
	hlog "github.com/mifanbang/hidxpad/internal/log"
)

// Driver implements the vendor protocol's synchronous send/reply helpers
// and the initialization handshake on top of a raw duplex channel.
type Driver struct {
	ch     *iocore.Channel
	logger *slog.Logger
}

// NewDriver wraps an already-open channel.
func NewDriver(ch *iocore.Channel) *Driver {
	return &Driver{ch: ch, logger: hlog.Component(nil, "protocol")}
}

// WithLogger replaces the driver's logger, returning the same driver for
// chaining.
func (d *Driver) WithLogger(logger *slog.Logger) *Driver {
	d.logger = hlog.Component(logger, "protocol")
	return d
}

// writeSync issues a write and blocks until it completes or the command
// reply timeout elapses. If a previous write is still in flight, it
// waits for that one to settle before issuing the new one.
func (d *Driver) writeSync(payload []byte) error {
	status := d.ch.Write.IssueWrite(payload)
	if status == iocore.StatusStillExecuting {
		if s := d.ch.Write.Sync(CommandReplyTimeout); s != iocore.StatusSuccess {
			return fmt.Errorf("switchpro: previous write did not settle: %s", s)
		}
		status = d.ch.Write.IssueWrite(payload)
	}
	if status != iocore.StatusSuccess {
		return fmt.Errorf("switchpro: issue write: %s", status)
	}

	if s := d.ch.Write.Sync(CommandReplyTimeout); s != iocore.StatusSuccess {
		return fmt.Errorf("switchpro: write timed out: %s", s)
	}
	if s := d.ch.Write.ConsumeWrite(); s != iocore.StatusSuccess {
		return fmt.Errorf("switchpro: write failed: %s", s)
	}
	return nil
}

// readSync issues a read (or waits on one already in flight) and
// consumes its result, within timeout.
func readSync(p *iocore.Pipe, buf iocore.Buffer, timeout time.Duration) (iocore.Status, int) {
	status := p.IssueRead()
	if status == iocore.StatusStillExecuting {
		// fall through to Sync below to wait on the existing operation
	} else if status != iocore.StatusSuccess {
		return status, 0
	}

	if s := p.Sync(timeout); s != iocore.StatusSuccess {
		return s, 0
	}
	return p.ConsumeRead(buf)
}

// readUntil polls reads until match reports true for some packet in a
// received buffer, or the deadline passes. Coalesced reads are iterated
// in order; the first match within a single read wins, matching the
// protocol driver's read-until-predicate contract.
func (d *Driver) readUntil(deadline time.Time, match func(Packet) bool) (Packet, bool) {
	buf := iocore.NewBuffer(ReadBufferSize)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			d.ch.CancelRead()
			return Packet{}, false
		}

		status, n := readSync(d.ch.Read, buf, remaining)
		if status != iocore.StatusSuccess {
			return Packet{}, false
		}

		var result Packet
		found := false
		Iterate(buf.Data[:n], func(p Packet) bool {
			if match(p) {
				result, found = p, true
				return false
			}
			return true
		})
		if found {
			return result, true
		}
	}
}

// SendCommand writes a TypeCommand packet. When expectReply is true it
// blocks for a matching TypeCommandReply within CommandReplyTimeout;
// ForceUSB is the one command the device never acknowledges.
func (d *Driver) SendCommand(code uint8, expectReply bool) error {
	raw := EncodeCommand(code)
	if err := d.writeSync(raw[:]); err != nil {
		return err
	}
	if !expectReply {
		return nil
	}

	deadline := time.Now().Add(CommandReplyTimeout)
	_, ok := d.readUntil(deadline, func(p Packet) bool {
		return p.Type == TypeCommandReply && p.CommandCode() == code
	})
	if !ok {
		return fmt.Errorf("%w: no reply to command 0x%02X", ErrHandshakeFailed, code)
	}
	return nil
}

// SendSubcommand writes a TypeRumbleAndSubcommand packet with neutral
// rumble parameters. Any TypeSubcommandReply whose subcommand code
// matches is treated as success; the ack bit is not checked, matching
// the device firmware's observed behavior.
func (d *Driver) SendSubcommand(code, serialID uint8, data uint32, expectReply bool) error {
	raw := EncodeSubcommand(code, serialID, data)
	if err := d.writeSync(raw[:]); err != nil {
		return err
	}
	if !expectReply {
		return nil
	}

	deadline := time.Now().Add(CommandReplyTimeout)
	_, ok := d.readUntil(deadline, func(p Packet) bool {
		if p.Type != TypeSubcommandReply {
			return false
		}
		_, subcmdCode, _ := p.SubcommandFields()
		return subcmdCode == code
	})
	if !ok {
		return fmt.Errorf("%w: no reply to subcommand 0x%02X", ErrHandshakeFailed, code)
	}
	return nil
}

// WaitFullStates blocks until a TypeFullStates packet arrives or timeout
// elapses.
func (d *Driver) WaitFullStates(timeout time.Duration) (CommonStates, bool) {
	deadline := time.Now().Add(timeout)
	pkt, ok := d.readUntil(deadline, func(p Packet) bool { return p.Type == TypeFullStates })
	if !ok {
		return CommonStates{}, false
	}
	return pkt.CommonStates(), true
}

// Initialize runs the five-step handshake that brings a freshly opened
// Pro controller into steady-state streaming: two handshakes bracketing
// a speed bump, a fire-and-forget USB-mode force, and finally lighting
// the first player LED.
func (d *Driver) Initialize() error {
	if err := d.SendCommand(CommandHandShake, true); err != nil {
		return err
	}
	if err := d.SendCommand(CommandSetHighSpeed, true); err != nil {
		return err
	}
	if err := d.SendCommand(CommandHandShake, true); err != nil {
		return err
	}
	if err := d.SendCommand(CommandForceUSB, false); err != nil {
		return err
	}
	if err := d.SendSubcommand(SubcommandSetPlayerLights, playerOneSerialID, playerOneLightsData, true); err != nil {
		return err
	}
	d.logger.Debug("handshake complete")
	return nil
}
