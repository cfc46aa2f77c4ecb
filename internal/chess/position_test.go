package chess

import (
	"errors"
	"reflect"
	"testing"
)

func positions(t *testing.T, names ...string) []Position {
	t.Helper()
	var out []Position
	for _, n := range names {
		p, err := ParsePosition(n)
		if err != nil {
			t.Fatalf("ParsePosition(%q): %v", n, err)
		}
		out = append(out, p)
	}
	return out
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition(" E4 ")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if p.File() != 5 || p.Rank() != 4 {
		t.Fatalf("unexpected coordinates: file=%d rank=%d", p.File(), p.Rank())
	}
	if got := p.String(); got != "e4" {
		t.Fatalf("String() = %q, want e4", got)
	}

	for _, in := range []string{"", "e", "e44", "i1", "a0", "a9", "z9", "4e", "!1"} {
		if _, err := ParsePosition(in); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("ParsePosition(%q) err = %v, want ErrInvalidPosition", in, err)
		}
	}
}

func TestNewPositionBounds(t *testing.T) {
	cases := []struct {
		file, rank int
		ok         bool
	}{
		{1, 1, true},
		{8, 8, true},
		{0, 1, false},
		{1, 0, false},
		{9, 4, false},
		{4, 9, false},
	}
	for _, tc := range cases {
		_, err := NewPosition(tc.file, tc.rank)
		if tc.ok && err != nil {
			t.Errorf("NewPosition(%d,%d): %v", tc.file, tc.rank, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("NewPosition(%d,%d) err = %v, want ErrInvalidPosition", tc.file, tc.rank, err)
		}
	}
	if (Position{}).Valid() {
		t.Fatalf("zero Position must not be valid")
	}
}

func TestDirectionTo(t *testing.T) {
	cases := []struct {
		from, to string
		want     DirectionKind
	}{
		{"a1", "h1", DirectionHorizontal},
		{"e2", "e7", DirectionVertical},
		{"c1", "h6", DirectionDiagonal},
		{"h8", "a1", DirectionDiagonal},
		{"b1", "c3", DirectionKnight},
		{"g8", "e7", DirectionKnight},
		{"a1", "c4", DirectionNone},
		{"d4", "d4", DirectionNone},
	}
	for _, tc := range cases {
		t.Run(tc.from+tc.to, func(t *testing.T) {
			got := MustPosition(tc.from).DirectionTo(MustPosition(tc.to)).Kind()
			if got != tc.want {
				t.Fatalf("DirectionTo = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDirectionPawnFlags(t *testing.T) {
	d := MustPosition("e2").DirectionTo(MustPosition("e4"))
	if !d.IsForwardForPawn() || d.IsDiagonalStep() {
		t.Fatalf("e2→e4 should be forward, not diagonal step")
	}
	d = MustPosition("e4").DirectionTo(MustPosition("d5"))
	if d.IsForwardForPawn() || !d.IsDiagonalStep() {
		t.Fatalf("e4→d5 should be a diagonal step")
	}
	d = MustPosition("e4").DirectionTo(MustPosition("c6"))
	if d.IsDiagonalStep() {
		t.Fatalf("e4→c6 is two squares away")
	}
}

func TestLinearityPredicates(t *testing.T) {
	e4 := MustPosition("e4")
	if e4.IsNonDiagonal(MustPosition("g6")) {
		t.Errorf("g6 is diagonal to e4")
	}
	if !e4.IsNonDiagonal(MustPosition("e8")) {
		t.Errorf("e8 is not diagonal to e4")
	}
	if e4.IsNonLinear(MustPosition("a4")) {
		t.Errorf("a4 shares a rank with e4")
	}
	if !e4.IsNonLinear(MustPosition("f6")) {
		t.Errorf("f6 shares neither rank nor file with e4")
	}
}

func TestPositionsBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     []string
	}{
		{"a1", "a4", []string{"a2", "a3"}},
		{"d1", "a1", []string{"c1", "b1"}},
		{"a1", "d4", []string{"b2", "c3"}},
		{"h8", "e5", []string{"g7", "f6"}},
		{"f1", "b5", []string{"e2", "d3", "c4"}},
		{"e4", "e5", nil},
		{"e4", "f5", nil},
		{"b1", "c3", nil},
		{"a1", "c2", nil},
	}
	for _, tc := range cases {
		t.Run(tc.from+tc.to, func(t *testing.T) {
			got := MustPosition(tc.from).PositionsBetween(MustPosition(tc.to))
			var want []Position
			if tc.want != nil {
				want = positions(t, tc.want...)
			}
			if len(got) == 0 && len(want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("PositionsBetween = %v, want %v", got, want)
			}
		})
	}
}

func TestPositionText(t *testing.T) {
	var p Position
	if err := p.UnmarshalText([]byte("g7")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, err := p.MarshalText()
	if err != nil || string(b) != "g7" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	if _, err := (Position{}).MarshalText(); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("zero position must not marshal, got %v", err)
	}
}
