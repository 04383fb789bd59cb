package bufwriter

import (
	"sync"
	"testing"
	"time"

	"github.com/vnykmshr/goflush/internal/testutil"
	"github.com/vnykmshr/goflush/pkg/streaming/signal"
)

func TestTrackerAddRelease(t *testing.T) {
	tr := newByteTracker(signal.New())

	tr.add(100)
	testutil.AssertEqual(t, tr.load(), int64(100))
	testutil.AssertEqual(t, tr.exceeds(99), true)
	testutil.AssertEqual(t, tr.exceeds(100), false)

	tr.release(60)
	testutil.AssertEqual(t, tr.load(), int64(40))
}

func TestTrackerNeverNegative(t *testing.T) {
	tr := newByteTracker(signal.New())

	tr.add(10)
	tr.release(25)
	testutil.AssertEqual(t, tr.load(), int64(0))
}

func TestTrackerReleaseNotifies(t *testing.T) {
	sig := signal.New()
	tr := newByteTracker(sig)
	tr.add(10)

	woken := make(chan bool, 1)
	go func() {
		woken <- sig.Wait(time.Second)
	}()

	time.Sleep(5 * time.Millisecond)
	tr.release(10)

	testutil.AssertEqual(t, <-woken, true)
}

func TestTrackerConcurrentMutation(t *testing.T) {
	tr := newByteTracker(signal.New())

	const (
		goroutines = 8
		iterations = 1000
	)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				tr.add(3)
				tr.release(3)
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, tr.load(), int64(0))
}
