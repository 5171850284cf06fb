package sat

import "testing"

type occEntry struct {
	id      int
	deleted bool
}

func TestOccListsPushAndLookup(t *testing.T) {
	deleted := map[int]bool{}
	o := NewOccLists[occEntry](func(e occEntry) bool { return deleted[e.id] })

	l := PositiveLiteral(0)
	o.Push(l, occEntry{id: 1})
	o.Push(l, occEntry{id: 2})

	got := o.Lookup(l)
	if len(got) != 2 {
		t.Fatalf("Lookup() length = %d, want 2", len(got))
	}
}

func TestOccListsSmudgeCompactsOnLookup(t *testing.T) {
	deleted := map[int]bool{}
	o := NewOccLists[occEntry](func(e occEntry) bool { return deleted[e.id] })

	l := PositiveLiteral(0)
	o.Push(l, occEntry{id: 1})
	o.Push(l, occEntry{id: 2})
	o.Push(l, occEntry{id: 3})

	deleted[2] = true
	o.Smudge(l)

	got := o.Lookup(l)
	if len(got) != 2 {
		t.Fatalf("Lookup() after Smudge length = %d, want 2", len(got))
	}
	for _, e := range got {
		if e.id == 2 {
			t.Fatalf("deleted entry survived compaction: %+v", got)
		}
	}
}

func TestOccListsRawDoesNotCompact(t *testing.T) {
	deleted := map[int]bool{}
	o := NewOccLists[occEntry](func(e occEntry) bool { return deleted[e.id] })

	l := PositiveLiteral(0)
	o.Push(l, occEntry{id: 1})
	o.Push(l, occEntry{id: 2})
	deleted[1] = true
	o.Smudge(l)

	raw := o.Raw(l)
	if len(raw) != 2 {
		t.Fatalf("Raw() length = %d, want 2 (should not compact)", len(raw))
	}
}

func TestOccListsCleanAllCompactsEverySmudgedList(t *testing.T) {
	deleted := map[int]bool{}
	o := NewOccLists[occEntry](func(e occEntry) bool { return deleted[e.id] })

	l0 := PositiveLiteral(0)
	l1 := PositiveLiteral(1)
	o.Push(l0, occEntry{id: 1})
	o.Push(l0, occEntry{id: 2})
	o.Push(l1, occEntry{id: 3})

	deleted[1] = true
	deleted[3] = true
	o.Smudge(l0)
	o.Smudge(l1)
	o.CleanAll()

	if got := o.Raw(l0); len(got) != 1 || got[0].id != 2 {
		t.Fatalf("Raw(l0) after CleanAll = %+v, want [{2 false}]", got)
	}
	if got := o.Raw(l1); len(got) != 0 {
		t.Fatalf("Raw(l1) after CleanAll = %+v, want empty", got)
	}
}

func TestOccListsClear(t *testing.T) {
	o := NewOccLists[occEntry](func(e occEntry) bool { return false })
	l := PositiveLiteral(0)
	o.Push(l, occEntry{id: 1})
	o.Clear(l)

	if got := o.Lookup(l); len(got) != 0 {
		t.Fatalf("Lookup() after Clear = %+v, want empty", got)
	}
}
