package testutil

import (
	"errors"
	"testing"
	"time"
)

func TestMockSinkSynchronous(t *testing.T) {
	sink := NewMockSink()

	done, err := sink.WriteAsync([]byte("hello"))
	if done != nil {
		t.Fatal("synchronous write should return a nil done channel")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.String() != "hello" {
		t.Errorf("recorded %q, want %q", sink.String(), "hello")
	}
	if sink.WriteCount() != 1 {
		t.Errorf("write count = %d, want 1", sink.WriteCount())
	}
}

func TestMockSinkErrorOnNth(t *testing.T) {
	sink := NewMockSink()
	boom := errors.New("boom")
	sink.SetErrorOnNth(2, boom)

	_, err := sink.WriteAsync([]byte("a"))
	if err != nil {
		t.Fatalf("first write should succeed: %v", err)
	}
	_, err = sink.WriteAsync([]byte("b"))
	if err != boom {
		t.Fatalf("second write error = %v, want boom", err)
	}
	_, err = sink.WriteAsync([]byte("c"))
	if err != nil {
		t.Fatalf("third write should succeed: %v", err)
	}
}

func TestMockSinkAsynchronous(t *testing.T) {
	sink := NewMockSink()
	sink.SetCompleteAfter(5 * time.Millisecond)

	done, err := sink.WriteAsync([]byte("async"))
	if done == nil {
		t.Fatal("asynchronous write should return a done channel")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case result := <-done:
		if result != nil {
			t.Errorf("completion error = %v, want nil", result)
		}
	case <-time.After(time.Second):
		t.Fatal("write never completed")
	}
}

func TestManualSink(t *testing.T) {
	sink := NewManualSink()

	done, err := sink.WriteAsync([]byte("held"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.InFlight() != 1 {
		t.Fatalf("in flight = %d, want 1", sink.InFlight())
	}

	boom := errors.New("boom")
	if !sink.Complete(boom) {
		t.Fatal("Complete should report a pending write")
	}
	if got := <-done; got != boom {
		t.Errorf("completion error = %v, want boom", got)
	}
	if sink.Complete(nil) {
		t.Error("Complete with empty queue should report false")
	}
}

func TestRecordingPool(t *testing.T) {
	p := NewRecordingPool(nil)

	buf := p.Rent(16)
	if p.Rents() != 1 || p.Outstanding() != 1 {
		t.Fatalf("rents = %d, outstanding = %d", p.Rents(), p.Outstanding())
	}

	p.Return(buf)
	if p.Returns() != 1 || p.Outstanding() != 0 {
		t.Fatalf("returns = %d, outstanding = %d", p.Returns(), p.Outstanding())
	}
}
