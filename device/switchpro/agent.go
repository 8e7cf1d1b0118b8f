package switchpro

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mifanbang/hidxpad/iocore"
	hlog "github.com/mifanbang/hidxpad/internal/log"
	"github.com/mifanbang/hidxpad/xinput"
)

// Agent owns the device channel and a worker goroutine that keeps a
// translated XInput state cache fresh. It is the only writer of that
// cache; any number of goroutines may call the query methods
// concurrently.
type Agent struct {
	logger *slog.Logger
	open   func() *iocore.Channel

	chMu    sync.Mutex
	channel *iocore.Channel

	cacheMu   sync.RWMutex
	cacheTime time.Time
	gamepad   xinput.State
	battery   xinput.BatteryInformation

	firstPull atomic.Bool
	stop      atomic.Bool
	wg        sync.WaitGroup
}

// NewAgent constructs an agent against the real system HID stack and
// immediately starts its worker goroutine. The device need not be
// attached yet; the worker will keep retrying via reattach.
func NewAgent(logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return newAgent(logger, func() *iocore.Channel { return openRealChannel(logger) })
}

func newAgent(logger *slog.Logger, open func() *iocore.Channel) *Agent {
	// The channel starts invalid so the worker's first tick always runs
	// through reattach (locate, probe, handshake if needed) rather than
	// assuming a bare-opened handle is already streaming.
	a := &Agent{logger: hlog.Component(logger, "agent"), open: open}
	a.wg.Add(1)
	go a.workerLoop()
	return a
}

func openRealChannel(logger *slog.Logger) *iocore.Channel {
	path, err := Locate()
	if err != nil {
		return nil
	}
	dev, err := Open(path)
	if err != nil {
		logger.Warn("switchpro: failed to open device", "path", path, "err", err)
		return nil
	}
	return iocore.NewChannel(dev, ReadBufferSize, WriteBufferSize)
}

// Close stops the worker goroutine and releases the device channel, if
// any. It blocks until the worker has exited.
func (a *Agent) Close() {
	a.stop.Store(true)
	a.wg.Wait()

	a.chMu.Lock()
	if a.channel != nil {
		a.channel.Close()
		a.channel = nil
	}
	a.chMu.Unlock()
}

func (a *Agent) workerLoop() {
	defer a.wg.Done()

	for !a.stop.Load() {
		if !a.isChannelValid() {
			if !a.reattach() {
				time.Sleep(TickInterval)
				continue
			}
		}
		a.pollOnce()
		time.Sleep(TickInterval)
	}
}

func (a *Agent) isChannelValid() bool {
	a.chMu.Lock()
	ch := a.channel
	a.chMu.Unlock()
	return ch != nil && ch.IsFileValid()
}

// reattach locates and opens the device, then either confirms it is
// already streaming or runs the full initialization handshake. It is
// called at most once per worker tick.
func (a *Agent) reattach() bool {
	a.firstPull.Store(false)

	ch := a.open()
	if ch == nil {
		return false
	}

	driver := NewDriver(ch).WithLogger(a.logger)
	if _, ok := driver.WaitFullStates(CommandReplyTimeout); ok {
		a.logger.Debug("switchpro: device already streaming, skipping handshake")
		a.setChannel(ch)
		return true
	}

	ch.CancelRead()
	if err := driver.Initialize(); err != nil {
		a.logger.Warn("switchpro: initialization handshake failed", "err", err)
		ch.Close()
		return false
	}

	a.logger.Info("switchpro: device attached and initialized")
	a.setChannel(ch)
	return true
}

func (a *Agent) setChannel(ch *iocore.Channel) {
	a.chMu.Lock()
	a.channel = ch
	a.chMu.Unlock()
}

// pollOnce consumes whatever read result is ready, reissues the next
// read immediately to keep the device pipeline filled, then translates
// the last FullStates packet found (if any) into the cache.
func (a *Agent) pollOnce() {
	a.chMu.Lock()
	ch := a.channel
	a.chMu.Unlock()
	if ch == nil {
		return
	}

	buf := iocore.NewBuffer(ReadBufferSize)
	status, n := ch.Read.ConsumeRead(buf)

	switch status {
	case iocore.StatusInvalidFile:
		a.logger.Warn("switchpro: read failed, reattaching")
		a.closeChannel(ch)
		return
	case iocore.StatusStillExecuting:
		if time.Since(a.cacheTimestamp()) > PacketTimeout {
			a.logger.Warn("switchpro: device silent past packet timeout, reattaching")
			a.closeChannel(ch)
		}
		return
	}

	reissueStatus := ch.Read.IssueRead()

	if pkt, ok := LastFullStates(buf.Data[:n]); ok {
		a.updateCache(pkt.CommonStates())
	}

	if reissueStatus == iocore.StatusInvalidFile {
		a.logger.Warn("switchpro: reissue failed after successful read, reattaching")
		a.closeChannel(ch)
	}
}

func (a *Agent) closeChannel(ch *iocore.Channel) {
	a.chMu.Lock()
	if a.channel == ch {
		ch.Close()
		a.channel = nil
	}
	a.chMu.Unlock()
}

func (a *Agent) updateCache(cs CommonStates) {
	state, battery := Translate(cs)

	a.cacheMu.Lock()
	a.cacheTime = time.Now()
	a.gamepad = state
	a.battery = battery
	a.cacheMu.Unlock()

	a.firstPull.Store(true)
}

func (a *Agent) cacheTimestamp() time.Time {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	return a.cacheTime
}

// GetState copies the cached gamepad state into the return value. The
// bool result is false if the cache is older than PacketTimeout or has
// never been populated.
func (a *Agent) GetState() (xinput.State, bool) {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	fresh := !a.cacheTime.IsZero() && time.Since(a.cacheTime) < PacketTimeout
	return a.gamepad, fresh
}

// GetBattery mirrors GetState for the battery structure.
func (a *Agent) GetBattery() (xinput.BatteryInformation, bool) {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	fresh := !a.cacheTime.IsZero() && time.Since(a.cacheTime) < PacketTimeout
	return a.battery, fresh
}

// IsDeviceValid reports whether the channel currently holds a live
// handle, independent of cache freshness.
func (a *Agent) IsDeviceValid() bool {
	return a.isChannelValid()
}

// WaitForFirstPull blocks until the worker has translated at least one
// FullStates packet since the last reattach, or the channel becomes
// invalid. Must not be called from the worker goroutine itself.
func (a *Agent) WaitForFirstPull() {
	for !a.firstPull.Load() && a.isChannelValid() {
		time.Sleep(time.Millisecond)
	}
}
