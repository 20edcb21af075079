package gridpartition

import "testing"

func TestIndexArrayGetRowMajor(t *testing.T) {
	arr, err := NewIndexArray(nil, []Index{2, 3}, []Index{
		10, 11, 12,
		20, 21, 22,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := arr.Get([]Index{1, 2})
	if err != nil || got != 22 {
		t.Fatalf("Get(1,2) = %d, %v, want 22", got, err)
	}
}

func TestIndexArrayBroadcast(t *testing.T) {
	arr, err := NewIndexArray(nil, []Index{1, 3}, []Index{7, 8, 9})
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range []Index{-5, 0, 100} {
		got, err := arr.Get([]Index{row, 1})
		if err != nil || got != 8 {
			t.Fatalf("Get(%d,1) = %d, %v, want 8", row, got, err)
		}
	}
}

func TestIndexArrayOutOfBounds(t *testing.T) {
	arr, _ := NewIndexArray(nil, []Index{3}, []Index{1, 2, 3})
	if _, err := arr.Get([]Index{3}); err == nil {
		t.Fatal("expected out of bounds error")
	}
}

func TestNewIndexArrayShapeMismatch(t *testing.T) {
	if _, err := NewIndexArray(nil, []Index{2, 2}, []Index{1, 2, 3}); err == nil {
		t.Fatal("expected shape/data length mismatch error")
	}
}
