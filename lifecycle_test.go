package vector

import (
	"errors"
	"testing"
)

// handle counts live copies through a shared registry, the way a type
// owning an external resource would.
type handle struct {
	id  int
	reg *registry
}

type registry struct {
	live   map[int]int
	failID int
}

func (h *handle) CopyFrom(src *handle) error {
	if src.reg != nil && src.id == src.reg.failID {
		return UserError(FirstUserCode + 1)
	}
	*h = *src
	if h.reg != nil {
		h.reg.live[h.id]++
	}
	return nil
}

func (h *handle) Destroy() {
	if h.reg != nil {
		h.reg.live[h.id]--
	}
}

func TestMethodHooksAreUsed(t *testing.T) {
	reg := &registry{live: make(map[int]int), failID: -1}
	v := New(Config[handle]{})

	for i := 0; i < 6; i++ {
		if err := v.PushBack(handle{id: i, reg: reg}); err != nil {
			t.Fatalf("PushBack(%d) failed: %v", i, err)
		}
	}
	for i := 0; i < 6; i++ {
		if reg.live[i] != 1 {
			t.Errorf("live[%d] = %d, want 1", i, reg.live[i])
		}
	}

	v.PopBack()
	if reg.live[5] != 0 {
		t.Errorf("live[5] after PopBack = %d, want 0", reg.live[5])
	}

	v.Release()
	for id, n := range reg.live {
		if n != 0 {
			t.Errorf("live[%d] after Release = %d, want 0", id, n)
		}
	}
}

func TestMethodCopyErrorPropagates(t *testing.T) {
	reg := &registry{live: make(map[int]int), failID: 3}
	v := New(Config[handle]{})
	defer v.Release()

	var err error
	for i := 0; i < 5 && err == nil; i++ {
		err = v.PushBack(handle{id: i, reg: reg})
	}
	if CodeOf(err) != FirstUserCode+1 {
		t.Fatalf("PushBack error code = %v, want %v", CodeOf(err), FirstUserCode+1)
	}
	if errors.Is(err, ErrAllocation) {
		t.Error("hook error should not be reported as an allocation failure")
	}
	if v.Len() != 3 {
		t.Errorf("Len() = %d, want 3", v.Len())
	}
}

func TestConfigHooksOverrideMethods(t *testing.T) {
	reg := &registry{live: make(map[int]int), failID: -1}
	var copies, destroys int
	v := New(Config[handle]{
		Copy:    func(dst, src *handle) error { copies++; *dst = *src; return nil },
		Destroy: func(*handle) { destroys++ },
	})

	v.PushBack(handle{id: 1, reg: reg})
	v.Release()

	if copies != 1 || destroys != 1 {
		t.Errorf("copies, destroys = %d, %d, want 1, 1", copies, destroys)
	}
	if reg.live[1] != 0 {
		t.Errorf("methods ran alongside hooks: live[1] = %d", reg.live[1])
	}
}

func TestReleaseZeroesSlot(t *testing.T) {
	v := New(Config[*int]{})
	defer v.Release()

	x := 7
	v.PushBack(&x)
	v.PushBack(&x)
	v.PopBack()

	// the vacated slot must not keep the pointer alive
	if got := v.buf[1]; got != nil {
		t.Errorf("slot 1 after PopBack = %v, want nil", got)
	}
}
