package utils

import (
	"sync"
	"testing"
)

func TestBatchBufferAddAndDrain(t *testing.T) {
	buffer := NewBatchBuffer[string]()

	if buffer.HasData() {
		t.Fatal("new buffer reports data")
	}
	if got := buffer.GetAndClear(); got != nil {
		t.Fatalf("draining an empty buffer returned %v, want nil", got)
	}

	buffer.Add("one")
	buffer.Add("two")
	if buffer.Size() != 2 {
		t.Fatalf("size = %d, want 2", buffer.Size())
	}

	batch := buffer.GetAndClear()
	if len(batch) != 2 || batch[0] != "one" || batch[1] != "two" {
		t.Fatalf("batch = %v", batch)
	}
	if buffer.HasData() {
		t.Fatal("buffer still reports data after drain")
	}
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buffer := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			buffer.Add(n)
		}(i)
	}
	wg.Wait()

	if buffer.Size() != 100 {
		t.Fatalf("size = %d, want 100", buffer.Size())
	}
}
