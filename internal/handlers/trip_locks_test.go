package handlers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripLockStoreSerialisesSameID(t *testing.T) {
	store := NewTripLockStore()

	var (
		wg      sync.WaitGroup
		active  int
		peak    int
		counter int
		mu      sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("trip-1", func() {
				mu.Lock()
				active++
				peak = max(peak, active)
				mu.Unlock()

				counter++

				mu.Lock()
				active--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
	assert.Equal(t, 1, peak)
	assert.Equal(t, 0, store.Len())
}

func TestTripLockStoreIndependentIDs(t *testing.T) {
	store := NewTripLockStore()

	unlockA := store.Lock("a")
	unlockB := store.Lock("b")
	assert.Equal(t, 2, store.Len())

	unlockA()
	unlockA()
	assert.Equal(t, 1, store.Len())

	unlockB()
	assert.Equal(t, 0, store.Len())
}
