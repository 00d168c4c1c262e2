package bitfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func u64(v uint64) *uint64 { return &v }

func mustTable(t *testing.T, fields ...Field) Table {
	t.Helper()
	tbl, err := NewTable(fields...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func TestGetSetRoundTrip(t *testing.T) {
	tbl := mustTable(t,
		Field{Name: "a", Word: 0, LSB: 0, Width: 8},
		Field{Name: "b", Word: 0, LSB: 8, Width: 8},
		Field{Name: "whole", Word: 1, LSB: 0, Width: 32},
	)
	words := []uint32{0, 0}
	words, err := tbl.Set(words, "a", 0xAB)
	if err != nil {
		t.Fatal(err)
	}
	words, err = tbl.Set(words, "b", 0xCD)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := tbl.Get(words, "a"); got != 0xAB {
		t.Errorf("a = %x, want ab", got)
	}
	if got, _ := tbl.Get(words, "b"); got != 0xCD {
		t.Errorf("b = %x, want cd", got)
	}
	if words[0] != 0xCDAB {
		t.Errorf("word 0 = %x, want cdab", words[0])
	}
	words, err = tbl.Set(words, "whole", 0xDEADBEEF)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := tbl.Get(words, "whole"); got != 0xDEADBEEF {
		t.Errorf("whole = %x, want deadbeef", got)
	}
}

// TestIsolation checks that Set(words, name, v) leaves every bit outside the
// field unchanged, per spec.md's field-engine isolation property.
func TestIsolation(t *testing.T) {
	tbl := mustTable(t,
		Field{Name: "lo", Word: 0, LSB: 0, Width: 4},
		Field{Name: "mid", Word: 0, LSB: 4, Width: 4},
		Field{Name: "hi", Word: 0, LSB: 8, Width: 4},
	)
	words := []uint32{0}
	words, _ = tbl.Set(words, "lo", 0xF)
	words, _ = tbl.Set(words, "hi", 0xA)
	before := words[0]
	words, err := tbl.Set(words, "mid", 0x3)
	if err != nil {
		t.Fatal(err)
	}
	if words[0]&0xF != before&0xF {
		t.Errorf("lo field disturbed: before=%x after=%x", before, words[0])
	}
	if (words[0]>>8)&0xF != (before>>8)&0xF {
		t.Errorf("hi field disturbed: before=%x after=%x", before, words[0])
	}
	if got, _ := tbl.Get(words, "mid"); got != 0x3 {
		t.Errorf("mid = %x, want 3", got)
	}
}

// TestWidthFit checks the field-engine overflow property: any value whose
// bits fit within the field's width succeeds, and any value with a higher
// bit set fails with ErrFieldOverflow.
func TestWidthFit(t *testing.T) {
	tbl := mustTable(t, Field{Name: "f", Word: 0, LSB: 0, Width: 4})
	for v := uint64(0); v <= 0xF; v++ {
		if _, err := tbl.Set([]uint32{0}, "f", v); err != nil {
			t.Errorf("Set(%d) failed: %v", v, err)
		}
	}
	if _, err := tbl.Set([]uint32{0}, "f", 0x10); err == nil {
		t.Errorf("Set(0x10) on a 4-bit field should overflow")
	}
}

// TestMergeOverride checks that a repeated child field name replaces the
// parent's definition while keeping the parent's field position.
func TestMergeOverride(t *testing.T) {
	parent := mustTable(t,
		Field{Name: "legacy_mode", Word: 0, LSB: 30, Width: 1, Default: u64(1)},
		Field{Name: "seconds", Word: 0, LSB: 0, Width: 30},
	)
	child := mustTable(t,
		Field{Name: "legacy_mode", Word: 0, LSB: 30, Width: 1, Default: u64(0)},
		Field{Name: "edv", Word: 4, LSB: 24, Width: 8},
	)
	merged := parent.Merge(child)
	names := merged.Names()
	want := []string{"legacy_mode", "seconds", "edv"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	def, _ := merged.Defaults("legacy_mode")
	if def != 0 {
		t.Errorf("legacy_mode default = %d, want 0 (child override)", def)
	}
}

// TestMergeAssociative checks (A+B)+C == A+(B+C) for parser tables, per
// spec.md's merge-associativity property.
func TestMergeAssociative(t *testing.T) {
	a := mustTable(t, Field{Name: "x", Word: 0, LSB: 0, Width: 4, Default: u64(1)})
	b := mustTable(t, Field{Name: "y", Word: 0, LSB: 4, Width: 4, Default: u64(2)})
	c := mustTable(t, Field{Name: "x", Word: 0, LSB: 0, Width: 4, Default: u64(9)})

	left := a.Merge(b).Merge(c)
	right := a.Merge(b.Merge(c))

	if diff := cmp.Diff(left.Names(), right.Names()); diff != "" {
		t.Errorf("Names() differ (-left +right):\n%s", diff)
	}
	for _, name := range left.Names() {
		ld, lok := left.Defaults(name)
		rd, rok := right.Defaults(name)
		if lok != rok || ld != rd {
			t.Errorf("field %q: left default (%d,%v) != right default (%d,%v)", name, ld, lok, rd, rok)
		}
	}
}

func TestEmptyTableIsLeftIdentity(t *testing.T) {
	empty := Table{}
	b := mustTable(t, Field{Name: "x", Word: 0, LSB: 0, Width: 4})
	merged := empty.Merge(b)
	if diff := cmp.Diff(b.Names(), merged.Names()); diff != "" {
		t.Errorf("empty.Merge(b) != b (-want +got):\n%s", diff)
	}
}

func TestSetDefaultMissingValue(t *testing.T) {
	tbl := mustTable(t, Field{Name: "f", Word: 0, LSB: 0, Width: 4})
	if _, err := tbl.SetDefault([]uint32{0}, "f"); err == nil {
		t.Errorf("SetDefault with no default should fail")
	}
}
