package util

import (
	"strings"
	"testing"
)

func TestSeeMore(t *testing.T) {
	out := SeeMore("♞ 도움말", "♞ 도움말\n\nbody line")
	if !strings.HasPrefix(out, "♞ 도움말"+KakaoZeroWidthSpace) {
		t.Fatalf("header must come first: %q", out[:20])
	}
	if strings.Count(out, "♞ 도움말") != 1 {
		t.Fatalf("duplicated header must be stripped")
	}
	if !strings.HasSuffix(out, "\nbody line") {
		t.Fatalf("body missing: %q", out[len(out)-20:])
	}
	if got := strings.Count(out, KakaoZeroWidthSpace); got != KakaoSeeMorePadding {
		t.Fatalf("padding = %d, want %d", got, KakaoSeeMorePadding)
	}
	if SeeMore("h", "  ") != "  " {
		t.Fatalf("blank body is returned unchanged")
	}
}

func TestStripLeadingHeader(t *testing.T) {
	cases := map[string]string{
		"H\r\n\r\nbody": "body",
		"H\nbody":       "body",
		"Hbody":         "body",
		"other":         "other",
	}
	for in, want := range cases {
		if got := StripLeadingHeader(in, "H"); got != want {
			t.Errorf("StripLeadingHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
