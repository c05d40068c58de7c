package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/encoding"
)

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		charset encoding.Charset
	}{
		{
			name:    "UTF8Passthrough",
			input:   []byte("Descrição;Valor\nCafé;12,50\n"),
			want:    "Descrição;Valor\nCafé;12,50\n",
			charset: encoding.UTF8,
		},
		{
			name:    "UTF8BOMStripped",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, []byte("Data;Histórico\n")...),
			want:    "Data;Histórico\n",
			charset: encoding.UTF8,
		},
		{
			// "Descrição;Valor\n" in cp1252: ç = 0xE7, ã = 0xE3
			name: "Windows1252",
			input: []byte{
				'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
				'V', 'a', 'l', 'o', 'r', '\n',
			},
			want: "Descrição;Valor\n",
		},
		{
			name:    "UTF16LE",
			input:   []byte{0xFF, 0xFE, 'O', 0, 'k', 0, '\n', 0},
			want:    "Ok\n",
			charset: encoding.UTF16LE,
		},
		{
			name:    "UTF16BE",
			input:   []byte{0xFE, 0xFF, 0, 'O', 0, 'k', 0, '\n'},
			want:    "Ok\n",
			charset: encoding.UTF16BE,
		},
		{
			name:    "Empty",
			input:   nil,
			want:    "",
			charset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cs, err := encoding.ToUTF8(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			if tt.charset != "" {
				assert.Equal(t, tt.charset, cs)
			}
		})
	}
}

func TestNewUTF8Reader_RuneSplitAtSampleEdge(t *testing.T) {
	// Put a two-byte rune across the 4096-byte sniff boundary.
	input := strings.Repeat("a", 4095) + "ç;fim\n"

	r, cs, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, cs)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestDetect_BOM(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16LE, encoding.Detect([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0, 'a'}))
}
