package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

func TestWriteChirp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chirp.wav")
	tone := config.Default().Tone.NewTone()

	require.NoError(t, writeChirp(path, tone, 2, false))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	s, format, err := wav.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, tone.SampleRate, format.SampleRate)
	assert.Equal(t, 2*tone.SymbolSamples(), s.Len())

	err = writeChirp(path, tone, 1, false)
	assert.ErrorContains(t, err, "--force")
	assert.NoError(t, writeChirp(path, tone, 1, true))
}

func TestPrintSummary(t *testing.T) {
	d, err := deck.Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	printSummary(&buf, d)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(d.Slides)+1)
	assert.Contains(t, lines[0], "7 slides")
	assert.True(t, strings.HasPrefix(lines[d.ChirpIndex()+1], "*"))
}
