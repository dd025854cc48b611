package words

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTables(t *testing.T) {
	tb, err := NewTables([]string{"trace", "crane", "slate", "crane"}, nil, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "trace"}, tb.Words)

	i, ok := tb.Index("slate")
	assert.True(t, ok)
	assert.Equal(t, uint(1), i)
	assert.False(t, tb.Contains("board"))
	assert.NotNil(t, tb.Stats)
	assert.Equal(t, 2, tb.Freqs.At('c', 0))
}

func TestNewTables_InvalidWord(t *testing.T) {
	tests := []struct {
		name string
		word string
	}{
		{"too short", "cran"},
		{"upper case", "Crane"},
		{"digit", "cr4ne"},
		{"space", "cra e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTables([]string{"slate", tt.word}, nil, nil, 5)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidWord)
		})
	}
}

func TestReadWordList(t *testing.T) {
	in := "# comment\nCrane\nslate\tx\nab\nit's\n\ntrace\n"
	list, skipped, err := ReadWordList(strings.NewReader(in), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "trace"}, list)
	assert.Equal(t, 2, skipped)
}

func TestReadFrequencies(t *testing.T) {
	in := "# letter\ttotal\t1\t2\na\t10\t1\t9\nb\t3\t3\t0\n"
	f, err := ReadFrequencies(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Frequencies{'a': {10, 1, 9}, 'b': {3, 3, 0}}, f)
	assert.Equal(t, 9, f.At('a', 2))
	assert.Equal(t, 0, f.At('a', 7))
	assert.Equal(t, 0, f.At('z', 1))

	_, err = ReadFrequencies(strings.NewReader("a\tx\n"))
	assert.Error(t, err)
	_, err = ReadFrequencies(strings.NewReader("a\n"))
	assert.Error(t, err)
}

func TestReadStats(t *testing.T) {
	in := "crane\t0.5\tignored\nslate\t1\n"
	s, err := ReadStats(strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Get("crane"), 1e-9)
	assert.Equal(t, 0.0, s.Get("board"))

	sq, err := ReadStats(strings.NewReader(in), 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, sq.Get("crane"), 1e-9)

	for _, bad := range []string{"-1", "NaN", "Inf", "-inf"} {
		_, err = ReadStats(strings.NewReader("crane\t"+bad+"\n"), 0)
		assert.Error(t, err, bad)
	}
}

func TestBuildFrequencies(t *testing.T) {
	f := BuildFrequencies([]string{"aab", "abc"}, nil, 1)
	want := Frequencies{'a': {3, 2, 1, 0}, 'b': {2, 0, 1, 1}, 'c': {1, 0, 0, 1}}
	for c, row := range want {
		if diff := cmp.Diff(row, f[c]); diff != "" {
			t.Errorf("letter %c (-want +got):\n%s", c, diff)
		}
	}
	assert.Len(t, f, 26)
	assert.Equal(t, []int{0, 0, 0, 0}, f['z'])
}

func TestBuildFrequencies_WeightedByStats(t *testing.T) {
	stats := Stats{"ab": 0.5}
	f := BuildFrequencies([]string{"ab", "ba"}, stats, 100)
	// "ab" contributes 0.25, "ba" (no stat) contributes 1.
	assert.Equal(t, []int{125, 25, 100}, f['a'])
	assert.Equal(t, []int{125, 100, 25}, f['b'])
}

func TestWriteFrequencies_RoundTrip(t *testing.T) {
	f := BuildFrequencies([]string{"crane", "slate", "trace"}, nil, 1)
	var buf bytes.Buffer
	require.NoError(t, WriteFrequencies(&buf, f, true))
	assert.True(t, strings.HasPrefix(buf.String(), "a\t3\t"), buf.String())

	back, err := ReadFrequencies(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	tb, err := Load(Source{Length: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, tb.Words)
	assert.True(t, tb.Contains("crane"))
	assert.Greater(t, tb.Stats.Get("crane"), 0.0)
	assert.Greater(t, tb.Freqs.At('e', 0), 0)
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "words.txt")
	statsPath := filepath.Join(dir, "stats.tsv")
	freqsPath := filepath.Join(dir, "freqs.tsv")
	require.NoError(t, os.WriteFile(wordsPath, []byte("crane\nslate\nbad\n"), 0o644))
	require.NoError(t, os.WriteFile(statsPath, []byte("crane\t0.9\n"), 0o644))
	require.NoError(t, os.WriteFile(freqsPath, []byte("c\t1\t1\t0\t0\t0\t0\n"), 0o644))

	tb, err := Load(Source{WordsFile: wordsPath, StatsFile: statsPath, FreqsFile: freqsPath, Length: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, tb.Words)
	assert.Len(t, tb.Freqs, 1)
	assert.InDelta(t, 0.9, tb.Stats.Get("crane"), 1e-9)
}

func TestLoad_NoWordsOfLength(t *testing.T) {
	dir := t.TempDir()
	wordsPath := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(wordsPath, []byte("crane\n"), 0o644))
	_, err := Load(Source{WordsFile: wordsPath, Length: 6})
	assert.Error(t, err)
}
