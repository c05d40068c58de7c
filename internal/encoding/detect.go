package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding an upload was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
	ISO885915   Charset = "ISO-8859-15"
)

// sniffLen is how much of the input is inspected.
const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the charset of sample, which should be the start of the
// input. Order: BOM, UTF-8 validity, chardet, then windows-1252.
func Detect(sample []byte) Charset {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return UTF8
	case bytes.HasPrefix(sample, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return UTF16BE
	}

	if validUTF8Prefix(sample) {
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return UTF8
		case "ISO-8859-9":
			return ISO88599
		case "ISO-8859-15":
			return ISO885915
		}
	}

	// Bank exports that are not UTF-8 are overwhelmingly Latin-1/cp1252,
	// which chardet often reports as ISO-8859-1.
	return Windows1252
}

// NewUTF8Reader returns a reader yielding r decoded to UTF-8, without any
// byte order mark, plus the charset it detected.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := Detect(sample)

	if cs == UTF8 {
		if bytes.HasPrefix(sample, bomUTF8) {
			_, _ = br.Discard(len(bomUTF8))
		}

		return br, cs, nil
	}

	return transform.NewReader(br, decoder(cs)), cs, nil
}

// ToUTF8 decodes a whole buffer.
func ToUTF8(data []byte) (string, Charset, error) {
	r, cs, err := NewUTF8Reader(bytes.NewReader(data))
	if err != nil {
		return "", "", err
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", cs, err)
	}

	return string(out), cs, nil
}

func decoder(cs Charset) *encoding.Decoder {
	switch cs {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case ISO88599:
		return charmap.ISO8859_9.NewDecoder()
	case ISO885915:
		return charmap.ISO8859_15.NewDecoder()
	default:
		return charmap.Windows1252.NewDecoder()
	}
}

// validUTF8Prefix is utf8.Valid that tolerates a rune cut off at the end of
// the sample.
func validUTF8Prefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.Valid(b[:len(b)-i]) && !utf8.FullRune(b[len(b)-i:]) {
			return true
		}
	}

	return false
}
