package scheduler

import (
	"math"
	"math/big"
	"reflect"
	"runtime"
	"testing"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid range", Request{Start: 10, End: 15}, false},
		{"single index", Request{Start: 7, End: 7}, false},
		{"zero range", Request{Start: 0, End: 0}, false},
		{"start after end", Request{Start: 15, End: 10}, true},
		{"negative start", Request{Start: -1, End: 10}, true},
		{"negative end", Request{Start: 0, End: -1}, true},
		{"both negative", Request{Start: -5, End: -1}, true},
		{"full index span overflows length", Request{Start: 0, End: math.MaxInt64}, true},
		{"widest representable span", Request{Start: 1, End: math.MaxInt64}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequest_Len(t *testing.T) {
	t.Parallel()
	tests := []struct {
		req  Request
		want int64
	}{
		{Request{Start: 10, End: 15}, 6},
		{Request{Start: 0, End: 0}, 1},
		{Request{Start: 100, End: 100}, 1},
	}
	for _, tt := range tests {
		if got := tt.req.Len(); got != tt.want {
			t.Errorf("Len() for [%d, %d] = %d, want %d", tt.req.Start, tt.req.End, got, tt.want)
		}
	}
}

func TestRequest_WorkerCount(t *testing.T) {
	t.Parallel()
	// Explicit counts are honored but always capped by the range length.
	if got := (Request{Start: 0, End: 999, Workers: 4}).workerCount(); got != 4 {
		t.Errorf("workerCount() = %d, want 4", got)
	}
	if got := (Request{Start: 10, End: 12, Workers: 24}).workerCount(); got != 3 {
		t.Errorf("workerCount() capped = %d, want 3", got)
	}

	// Zero means all available hardware parallelism.
	want := runtime.GOMAXPROCS(0)
	if total := int64(1000); int64(want) > total {
		want = int(total)
	}
	if got := (Request{Start: 0, End: 999}).workerCount(); got != want {
		t.Errorf("workerCount() default = %d, want %d", got, want)
	}

	// The effective pool size is never below one, even for spans so large
	// that the length cap cannot apply.
	if got := (Request{Start: 1, End: math.MaxInt64, Workers: 4}).workerCount(); got != 4 {
		t.Errorf("workerCount() on widest span = %d, want 4", got)
	}
}

func TestRequest_ChunkSize(t *testing.T) {
	t.Parallel()
	// Explicit override wins.
	if got := (Request{Start: 0, End: 999, ChunkSize: 5}).chunkSize(4); got != 5 {
		t.Errorf("chunkSize() = %d, want 5", got)
	}

	// Adaptive: several chunks per worker, never below 1.
	if got := (Request{Start: 0, End: 9}).chunkSize(4); got != 1 {
		t.Errorf("chunkSize() for tiny range = %d, want 1", got)
	}

	// Adaptive: capped at DefaultChunkSize for huge ranges.
	if got := (Request{Start: 0, End: 999_999}).chunkSize(4); got != DefaultChunkSize {
		t.Errorf("chunkSize() for huge range = %d, want %d", got, DefaultChunkSize)
	}
}

func TestResult_Value(t *testing.T) {
	t.Parallel()
	res := &Result{
		Start:  10,
		Values: []*big.Int{big.NewInt(55), big.NewInt(89), big.NewInt(144)},
	}

	if got := res.Value(11); got.Cmp(big.NewInt(89)) != 0 {
		t.Errorf("Value(11) = %s, want 89", got)
	}
	if got := res.Value(9); got != nil {
		t.Errorf("Value(9) = %s, want nil (below range)", got)
	}
	if got := res.Value(13); got != nil {
		t.Errorf("Value(13) = %s, want nil (above range)", got)
	}
}

func TestResult_Strings(t *testing.T) {
	t.Parallel()
	res := &Result{
		Start:  10,
		Values: []*big.Int{big.NewInt(55), big.NewInt(89)},
	}
	if got, want := res.Strings(), []string{"55", "89"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
	if got := res.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}
