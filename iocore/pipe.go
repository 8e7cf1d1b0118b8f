package iocore

import (
	"sync"
	"time"
)

// device is the minimal transport a Pipe needs. *hid.Device from
// github.com/sstallion/go-hid satisfies it directly; tests supply a fake.
type device interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}

// Pipe drives one direction (read or write) of I/O against a device,
// one operation at a time, with explicit completion semantics: issue,
// poll, wait, cancel. Only one operation may be in flight at a time; a
// second Issue while one is outstanding reports StatusStillExecuting.
//
// Each issued operation runs on its own goroutine and reports into a
// single-slot mailbox guarded by mu. This is the "dedicated I/O thread
// plus single-slot mailbox and cancellation flag" substitute for
// overlapped I/O.
type Pipe struct {
	dev     device
	bufSize int
	isWrite bool

	mu        sync.Mutex
	inFlight  bool
	done      chan struct{}
	cancelled bool
	consumed  bool
	n         int
	buf       []byte
	opErr     error
}

// NewReadPipe constructs a pipe that issues reads of bufSize bytes.
func NewReadPipe(dev device, bufSize int) *Pipe {
	return &Pipe{dev: dev, bufSize: bufSize, isWrite: false}
}

// NewWritePipe constructs a pipe that issues writes of up to bufSize bytes.
func NewWritePipe(dev device, bufSize int) *Pipe {
	return &Pipe{dev: dev, bufSize: bufSize, isWrite: true}
}

// IsValid reports whether the pipe has a live device to operate on.
func (p *Pipe) IsValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev != nil
}

// Invalidate marks the pipe unusable. Any in-flight operation is left to
// finish on its own goroutine; its result, if any, will be discarded.
func (p *Pipe) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dev = nil
}

// IsOpExecuting reports whether an issued operation has not yet completed.
func (p *Pipe) IsOpExecuting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opExecutingLocked()
}

func (p *Pipe) opExecutingLocked() bool {
	if !p.inFlight {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// GetBufferSize returns the configured transfer size for this pipe.
func (p *Pipe) GetBufferSize() int {
	return p.bufSize
}

// IssueRead starts an asynchronous read of up to the pipe's buffer size;
// use IssueWrite for writes.
func (p *Pipe) IssueRead() Status {
	return p.issue(nil)
}

// IssueWrite starts an asynchronous write of a copy of payload (truncated
// or zero-padded to the pipe's buffer size, matching the device's fixed
// frame size).
func (p *Pipe) IssueWrite(payload []byte) Status {
	staged := make([]byte, p.bufSize)
	copy(staged, payload)
	return p.issue(staged)
}

func (p *Pipe) issue(writePayload []byte) Status {
	p.mu.Lock()
	if p.dev == nil {
		p.mu.Unlock()
		return StatusInvalidFile
	}
	if p.opExecutingLocked() {
		p.mu.Unlock()
		return StatusStillExecuting
	}

	dev := p.dev
	done := make(chan struct{})
	p.done = done
	p.inFlight = true
	p.consumed = false
	p.cancelled = false
	p.n, p.buf, p.opErr = 0, nil, nil
	p.mu.Unlock()

	go func() {
		var n int
		var err error
		var buf []byte
		if writePayload != nil {
			n, err = dev.Write(writePayload)
		} else {
			buf = make([]byte, p.bufSize)
			n, err = dev.Read(buf)
		}

		p.mu.Lock()
		p.n, p.buf, p.opErr = n, buf, err
		p.mu.Unlock()
		close(done)
	}()

	return StatusSuccess
}

// Sync waits for the in-flight operation to complete, up to timeout. A
// timeout of zero waits indefinitely. Returns Success immediately if no
// operation is in flight.
func (p *Pipe) Sync(timeout time.Duration) Status {
	p.mu.Lock()
	if !p.opExecutingLocked() {
		p.mu.Unlock()
		return StatusSuccess
	}
	done := p.done
	p.mu.Unlock()

	if timeout <= 0 {
		<-done
		return StatusSuccess
	}

	select {
	case <-done:
		return StatusSuccess
	case <-time.After(timeout):
		return StatusStillExecuting
	}
}

// CancelOp requests cancellation of an in-flight operation without
// waiting for it to settle. The underlying blocking call on the I/O
// goroutine cannot be interrupted directly; its eventual result is simply
// discarded by ConsumeRead/ConsumeWrite.
func (p *Pipe) CancelOp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opExecutingLocked() || p.inFlight {
		p.cancelled = true
	}
}

// ConsumeRead copies the result of the most recent completed read into
// out, returning the number of bytes copied. Only the first call after a
// successful completion returns nonzero data; subsequent calls return
// Success with zero bytes until the next IssueRead. If the pipe was
// cancelled before completion, the result is discarded and treated as
// Success with zero bytes.
func (p *Pipe) ConsumeRead(out Buffer) (Status, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consumeLocked(out)
}

// ConsumeWrite mirrors ConsumeRead for the write direction; it takes no
// buffer since writes carry no payload back.
func (p *Pipe) ConsumeWrite() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, _ := p.consumeLocked(Buffer{})
	return status
}

func (p *Pipe) consumeLocked(out Buffer) (Status, int) {
	if p.dev == nil {
		return StatusInvalidFile, 0
	}
	if !p.inFlight {
		return StatusSuccess, 0
	}
	select {
	case <-p.done:
	default:
		return StatusStillExecuting, 0
	}

	p.inFlight = false

	if p.cancelled {
		p.consumed = true
		return StatusSuccess, 0
	}
	if p.opErr != nil {
		return StatusInvalidFile, 0
	}
	if p.consumed {
		return StatusSuccess, 0
	}
	p.consumed = true

	n := 0
	if out.Data != nil && p.buf != nil {
		n = copy(out.Data, p.buf[:p.n])
	}
	return StatusSuccess, n
}
