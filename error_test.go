package pbg

import (
	"strings"
	"testing"
)

func TestIsError(t *testing.T) {
	t.Parallel()

	if IsError(nil) {
		t.Errorf("IsError(nil) = true, want false")
	}
	if got := IsError(newStateError("boom")); !got {
		t.Errorf("IsError(newStateError(...)) = false, want true")
	}
}

func TestErrorMessageIncludesSnippet(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("(& TRUE 'unterminated)"))
	if err == nil {
		t.Fatalf("Parse succeeded, want a syntax error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "-->") {
		t.Errorf("Error() = %q, want a caret-pointer snippet", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Errorf("Error() = %q, want a caret marker", msg)
	}
}

func TestLineCol(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc     string
		source   string
		index    int
		wantLine int
		wantCol  int
	}{
		{desc: "Start", source: "(& TRUE FALSE)", index: 0, wantLine: 1, wantCol: 1},
		{desc: "MidFirstLine", source: "(& TRUE FALSE)", index: 3, wantLine: 1, wantCol: 4},
		{desc: "SecondLine", source: "(&\nTRUE FALSE)", index: 3, wantLine: 2, wantCol: 1},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			line, col := lineCol(tc.source, tc.index)
			if line != tc.wantLine || col != tc.wantCol {
				t.Errorf("lineCol(%q, %d) = (%d, %d), want (%d, %d)", tc.source, tc.index, line, col, tc.wantLine, tc.wantCol)
			}
		})
	}
}

func TestFreeErrorIsNoOp(t *testing.T) {
	t.Parallel()

	err := newStateError("boom")
	FreeError(err)
	if err.Kind != KindState {
		t.Errorf("FreeError mutated its argument, want no-op")
	}
}
