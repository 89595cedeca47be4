package nexus

import "testing"

func TestSymbolTableInsertAndLookup(t *testing.T) {
	st := NewSymbolTable()

	if !st.Insert("x", "int", 2, 11) {
		t.Fatalf("first insert must succeed")
	}
	if !st.Exists("x") {
		t.Fatalf("x must exist after insert")
	}

	sym, ok := st.Lookup("x")
	if !ok {
		t.Fatalf("lookup must find x")
	}
	if sym.Name != "x" || sym.Type != "int" || sym.Line != 2 || sym.Column != 11 {
		t.Fatalf("unexpected symbol %+v", sym)
	}
	if sym.Initialized {
		t.Fatalf("symbols start uninitialized")
	}
}

func TestSymbolTableRejectsDuplicates(t *testing.T) {
	st := NewSymbolTable()

	st.Insert("x", "int", 1, 1)
	if st.Insert("x", "float", 5, 3) {
		t.Fatalf("duplicate insert must report failure")
	}

	// The prior entry wins.
	sym, _ := st.Lookup("x")
	if sym.Type != "int" || sym.Line != 1 {
		t.Fatalf("duplicate insert must not replace the entry, got %+v", sym)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", st.Len())
	}
}

func TestSymbolTableMissingLookup(t *testing.T) {
	st := NewSymbolTable()
	if st.Exists("ghost") {
		t.Fatalf("empty table must not report ghost")
	}
	if _, ok := st.Lookup("ghost"); ok {
		t.Fatalf("lookup of missing name must report absence")
	}
}

func TestSymbolTableNamesAreCaseSensitive(t *testing.T) {
	st := NewSymbolTable()
	st.Insert("foo", "int", 1, 1)
	if !st.Insert("Foo", "bool", 1, 10) {
		t.Fatalf("Foo must not collide with foo")
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", st.Len())
	}
}
