package device

import (
	"errors"
	"testing"
	"time"
)

type fakeHandle struct{ id int }

func TestOpenWithTimeout(t *testing.T) {
	t.Run("opens in time", func(t *testing.T) {
		released := make(chan *fakeHandle, 1)
		got, err := openWithTimeout(func() (*fakeHandle, error) {
			return &fakeHandle{id: 1}, nil
		}, func(h *fakeHandle) { released <- h }, time.Second)
		if err != nil {
			t.Fatalf("openWithTimeout() error = %v", err)
		}
		if got == nil || got.id != 1 {
			t.Fatalf("openWithTimeout() = %v, want handle 1", got)
		}
		select {
		case h := <-released:
			t.Errorf("released %v, want nothing released", h)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("open error", func(t *testing.T) {
		wantErr := errors.New("no device")
		_, err := openWithTimeout(func() (*fakeHandle, error) {
			return nil, wantErr
		}, func(*fakeHandle) {}, time.Second)
		if !errors.Is(err, wantErr) {
			t.Errorf("openWithTimeout() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("late device is released", func(t *testing.T) {
		unblock := make(chan struct{})
		released := make(chan *fakeHandle, 1)
		got, err := openWithTimeout(func() (*fakeHandle, error) {
			<-unblock
			return &fakeHandle{id: 2}, nil
		}, func(h *fakeHandle) { released <- h }, 10*time.Millisecond)
		if !errors.Is(err, ErrDetectTimeout) {
			t.Fatalf("openWithTimeout() error = %v, want %v", err, ErrDetectTimeout)
		}
		if got != nil {
			t.Errorf("openWithTimeout() = %v, want nil", got)
		}

		close(unblock)
		select {
		case h := <-released:
			if h.id != 2 {
				t.Errorf("released handle %d, want 2", h.id)
			}
		case <-time.After(time.Second):
			t.Fatal("late device was never released")
		}
	})

	t.Run("late error releases nothing", func(t *testing.T) {
		unblock := make(chan struct{})
		released := make(chan *fakeHandle, 1)
		_, err := openWithTimeout(func() (*fakeHandle, error) {
			<-unblock
			return nil, errors.New("gone")
		}, func(h *fakeHandle) { released <- h }, 10*time.Millisecond)
		if !errors.Is(err, ErrDetectTimeout) {
			t.Fatalf("openWithTimeout() error = %v, want %v", err, ErrDetectTimeout)
		}

		close(unblock)
		select {
		case h := <-released:
			t.Errorf("released %v after a failed open", h)
		case <-time.After(50 * time.Millisecond):
		}
	})
}
