package switchpro

import "errors"

// ErrHandshakeFailed is wrapped (with %w) into the error returned when a
// command or subcommand gets no matching reply within CommandReplyTimeout.
// Write failures are returned as plain errors without it.
var ErrHandshakeFailed = errors.New("switchpro: initialization handshake failed")
