package iocore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelCloseInvalidatesBothPipes(t *testing.T) {
	dev := &fakeDevice{
		readFn:  func(buf []byte) (int, error) { return 0, nil },
		writeFn: func(buf []byte) (int, error) { return len(buf), nil },
	}
	ch := NewChannel(dev, 128, 64)
	require.True(t, ch.IsFileValid())

	ch.Close()

	assert.False(t, ch.IsFileValid())
	assert.Equal(t, StatusInvalidFile, ch.Read.IssueRead())
	assert.Equal(t, StatusInvalidFile, ch.Write.IssueWrite([]byte{1}))
}

func TestChannelSyncAllWaitsReadThenWrite(t *testing.T) {
	dev := &fakeDevice{
		readFn:  func(buf []byte) (int, error) { return 0, nil },
		writeFn: func(buf []byte) (int, error) { return len(buf), nil },
	}
	ch := NewChannel(dev, 128, 64)

	require.Equal(t, StatusSuccess, ch.Read.IssueRead())
	require.Equal(t, StatusSuccess, ch.Write.IssueWrite([]byte{1, 2}))

	assert.Equal(t, StatusSuccess, ch.SyncAll(time.Second))
}

func TestChannelSyncAllNoOpWhenNothingInFlight(t *testing.T) {
	dev := &fakeDevice{
		readFn:  func(buf []byte) (int, error) { return 0, nil },
		writeFn: func(buf []byte) (int, error) { return len(buf), nil },
	}
	ch := NewChannel(dev, 128, 64)
	assert.Equal(t, StatusSuccess, ch.SyncAll(time.Second))
}
