package linebuffer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := New()
	require.NotNil(t, buf)
	assert.Empty(t, buf.Lines())
	assert.Equal(t, "", buf.Pending())
	assert.Equal(t, 0, buf.Len())
}

func TestAddChunk(t *testing.T) {
	tests := []struct {
		name        string
		chunks      []string
		wantLines   []string
		wantPending string
	}{
		{
			name:        "two terminated chunks",
			chunks:      []string{"foo\n", "bar\n"},
			wantLines:   []string{"foo", "bar"},
			wantPending: "",
		},
		{
			name:        "partial tail is kept",
			chunks:      []string{"foo\nb"},
			wantLines:   []string{"foo"},
			wantPending: "b",
		},
		{
			name:        "partial tail completed by next chunk",
			chunks:      []string{"foo\nb", "ar\n"},
			wantLines:   []string{"foo", "bar"},
			wantPending: "",
		},
		{
			name:        "multiple newlines in one chunk",
			chunks:      []string{"a\nb\nc\nd"},
			wantLines:   []string{"a", "b", "c"},
			wantPending: "d",
		},
		{
			name:        "empty chunk on empty buffer",
			chunks:      []string{""},
			wantLines:   []string{},
			wantPending: "",
		},
		{
			name:        "empty chunk keeps pending",
			chunks:      []string{"abc", ""},
			wantLines:   []string{},
			wantPending: "abc",
		},
		{
			name:        "lone newline yields an empty line",
			chunks:      []string{"\n"},
			wantLines:   []string{""},
			wantPending: "",
		},
		{
			name:        "newline terminates pending only",
			chunks:      []string{"ab", "\n"},
			wantLines:   []string{"ab"},
			wantPending: "",
		},
		{
			name:        "consecutive newlines",
			chunks:      []string{"a\n\n"},
			wantLines:   []string{"a", ""},
			wantPending: "",
		},
		{
			name:        "chunk split inside a json record",
			chunks:      []string{`{"type":"ADD`, `ED","object":{}}` + "\n" + `{"type":"DEL`},
			wantLines:   []string{`{"type":"ADDED","object":{}}`},
			wantPending: `{"type":"DEL`,
		},
		{
			name:        "binary-unsafe text is opaque",
			chunks:      []string{"\x00\xff\n\xfe"},
			wantLines:   []string{"\x00\xff"},
			wantPending: "\xfe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := New()
			for _, chunk := range tt.chunks {
				buf.AddChunk(chunk)
			}
			assert.Equal(t, tt.wantLines, buf.Lines())
			assert.Equal(t, tt.wantPending, buf.Pending())
		})
	}
}

func TestLinesDrains(t *testing.T) {
	buf := New()
	buf.AddChunk("foo\nbar\nba")
	assert.Equal(t, 2, buf.Len())

	assert.Equal(t, []string{"foo", "bar"}, buf.Lines())
	assert.Empty(t, buf.Lines(), "second drain without new chunks must be empty")
	assert.Equal(t, "ba", buf.Pending(), "draining must not touch pending")

	buf.AddChunk("z\n")
	assert.Equal(t, []string{"baz"}, buf.Lines())
	assert.Empty(t, buf.Lines())
}

func TestLinesAccumulateUntilDrained(t *testing.T) {
	buf := New()
	buf.AddChunk("one\n")
	buf.AddChunk("two\nthr")
	buf.AddChunk("ee\n")

	assert.Equal(t, []string{"one", "two", "three"}, buf.Lines())
}

// TestConcatenationInvariant feeds random splits of a stream and checks that
// every byte comes out exactly once, either in a drained line or in pending.
func TestConcatenationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ab\n{}\"x")

	for round := 0; round < 200; round++ {
		var stream strings.Builder
		size := rng.Intn(200)
		for i := 0; i < size; i++ {
			stream.WriteByte(alphabet[rng.Intn(len(alphabet))])
		}
		input := stream.String()

		buf := New()
		var emitted strings.Builder
		rest := input
		for len(rest) > 0 {
			n := rng.Intn(len(rest)) + 1
			buf.AddChunk(rest[:n])
			rest = rest[n:]

			if rng.Intn(2) == 0 {
				for _, line := range buf.Lines() {
					emitted.WriteString(line)
					emitted.WriteString("\n")
				}
			}
		}
		for _, line := range buf.Lines() {
			emitted.WriteString(line)
			emitted.WriteString("\n")
		}

		require.Equal(t, input, emitted.String()+buf.Pending(), "round %d", round)
		assert.NotContains(t, buf.Pending(), "\n")
	}
}
