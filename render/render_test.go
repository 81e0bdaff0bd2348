//go:build unit

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LerianStudio/lib-invariants/failure"
)

// --- Buffer Tests ---

func TestBuffer_ReservesOneByte(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(9)
	require.Equal(t, 8, buf.Cap())
}

func TestBuffer_TruncatesSilently(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(9)

	n, err := buf.WriteString("0123456789")
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, "01234567", buf.String())
}

func TestBuffer_TruncationBoundaryIsExact(t *testing.T) {
	t.Parallel()

	// M > N must yield exactly the first N bytes, never more, never
	// corrupted at the boundary.
	buf := NewBuffer(5)
	full := "abcdefgh"

	buf.WriteString(full)
	require.Equal(t, full[:4], buf.String())
	require.Equal(t, 4, buf.Len())
}

func TestBuffer_WriteByteAtCapacity(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(2)
	require.NoError(t, buf.WriteByte('a'))
	require.NoError(t, buf.WriteByte('b'))
	require.Equal(t, "a", buf.String())
}

func TestBuffer_ResetReusesStorage(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(9)
	buf.WriteString("first")
	buf.Reset()
	buf.WriteString("second")
	require.Equal(t, "second", buf.String())
}

func TestBuffer_ZeroCapacityAcceptsNothing(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, 1} {
		buf := NewBuffer(capacity)
		n, err := buf.WriteString("x")
		require.NoError(t, err)
		require.Equal(t, 1, n)
		require.Equal(t, 0, buf.Len())
	}
}

func TestBuffer_NegativeCapacity(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(-4)
	require.Equal(t, 0, buf.Cap())
}

// --- PrintfRenderer Tests ---

func TestPrintfRenderer_RendersVerbs(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	n, err := PrintfRenderer{}.Render(buf, "Thread %d: %s", 4, "idle")
	require.NoError(t, err)
	require.Equal(t, len("Thread 4: idle"), n)
	require.Equal(t, "Thread 4: idle", buf.String())
}

func TestPrintfRenderer_Truncates(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(9)

	n, err := PrintfRenderer{}.Render(buf, "%s", "0123456789")
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, "01234567", buf.String())
}

func TestPrintfRenderer_BadVerbIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	format := "%d"
	_, err := PrintfRenderer{}.Render(buf, format, "not a number")
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestPrintfRenderer_MissingArgumentIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	format := "%s %s"
	_, err := PrintfRenderer{}.Render(buf, format, "only one")
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestPrintfRenderer_ExtraArgumentIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	format := "%s"
	_, err := PrintfRenderer{}.Render(buf, format, "one", "two")
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestPrintfRenderer_LiteralPercentIsNotAnError(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := PrintfRenderer{}.Render(buf, "at %d%%", 95)
	require.NoError(t, err)
	require.Equal(t, "at 95%", buf.String())
}

func TestPrintfRenderer_PercentBangInFormatIsNotAnError(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := PrintfRenderer{}.Render(buf, "progress 100%%!")
	require.NoError(t, err)
	require.Equal(t, "progress 100%!", buf.String())
}

func TestPrintfRenderer_PercentBangInArgumentIsNotAnError(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := PrintfRenderer{}.Render(buf, "%s", "ratio is 100%!")
	require.NoError(t, err)
	require.Equal(t, "ratio is 100%!", buf.String())
}

func TestHasFormatErrorMark(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "wrong type", in: "count %!d(string=four)", want: true},
		{name: "missing argument", in: "a %!s(MISSING)", want: true},
		{name: "extra argument", in: "one%!(EXTRA string=two)", want: true},
		{name: "no verb", in: "dangling %!(NOVERB)", want: true},
		{name: "bad width", in: "%!(BADWIDTH)x", want: true},
		{name: "trailing percent bang", in: "progress 100%!", want: false},
		{name: "percent bang mid-string", in: "wow%! really", want: false},
		{name: "percent bang then word", in: "100%!done", want: false},
		{name: "clean output", in: "Thread 4: idle", want: false},
		{name: "mark after benign percent bang", in: "100%! and %!d(string=x)", want: true},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, hasFormatErrorMark(tc.in), tc.name)
	}
}

func TestPrintfRenderer_ResetsBufferBetweenRenders(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)
	r := PrintfRenderer{}

	_, err := r.Render(buf, "first call")
	require.NoError(t, err)

	_, err = r.Render(buf, "second")
	require.NoError(t, err)
	require.Equal(t, "second", buf.String())
}

// --- BraceRenderer Tests ---

type stubStringer struct{ value string }

func (s stubStringer) String() string { return s.value }

type panicStringer struct{}

func (panicStringer) String() string { panic("no rendering today") }

func TestBraceRenderer_RendersTypedArguments(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(128)

	cases := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "string", format: "Thread {}", args: []any{"zero"}, want: "Thread zero"},
		{name: "int", format: "Thread {}", args: []any{7}, want: "Thread 7"},
		{name: "uint64", format: "{} bytes", args: []any{uint64(18446744073709551615)}, want: "18446744073709551615 bytes"},
		{name: "bool", format: "ready={}", args: []any{true}, want: "ready=true"},
		{name: "float", format: "ratio={}", args: []any{0.5}, want: "ratio=0.5"},
		{name: "bytes", format: "[{}]", args: []any{[]byte("raw")}, want: "[raw]"},
		{name: "stringer", format: "{}", args: []any{stubStringer{value: "via Stringer"}}, want: "via Stringer"},
		{name: "escaped braces", format: "{{{}}}", args: []any{"x"}, want: "{x}"},
		{name: "no placeholders", format: "plain text", args: nil, want: "plain text"},
	}

	for _, tc := range cases {
		n, err := BraceRenderer{}.Render(buf, tc.format, tc.args...)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.want, buf.String(), tc.name)
		require.Equal(t, len(tc.want), n, tc.name)
	}
}

func TestBraceRenderer_CountMismatchIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := BraceRenderer{}.Render(buf, "{} {}", "only one")
	require.ErrorIs(t, err, failure.ErrFormat)

	_, err = BraceRenderer{}.Render(buf, "{}", "one", "two")
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestBraceRenderer_UnsupportedTypeIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := BraceRenderer{}.Render(buf, "{}", struct{ x int }{x: 1})
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestBraceRenderer_MalformedPlaceholderIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := BraceRenderer{}.Render(buf, "broken {", "x")
	require.ErrorIs(t, err, failure.ErrFormat)

	_, err = BraceRenderer{}.Render(buf, "broken {0}", "x")
	require.ErrorIs(t, err, failure.ErrFormat)

	_, err = BraceRenderer{}.Render(buf, "broken }")
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestBraceRenderer_PanickingStringerIsFormatFailure(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(64)

	_, err := BraceRenderer{}.Render(buf, "{}", panicStringer{})
	require.ErrorIs(t, err, failure.ErrFormat)
}

func TestBraceRenderer_Truncates(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(9)

	n, err := BraceRenderer{}.Render(buf, "{}", strings.Repeat("z", 20))
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Equal(t, strings.Repeat("z", 8), buf.String())
}
