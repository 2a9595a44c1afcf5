package tui

import (
	"sync"
	"testing"
)

func TestProgramRef_SendBeforeSetProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}

	// A bridge goroutine may report progress before the program is running;
	// the message is dropped instead of panicking.
	ref.Send(ProgressMsg{Value: 0.5})
}

func TestProgramRef_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	ref := &programRef{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ref.Send(ProgressMsg{Value: float64(i) / 1000})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			ref.SetProgram(nil)
		}
	}()
	wg.Wait()
}
