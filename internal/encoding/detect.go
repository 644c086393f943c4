// Package encoding turns bank statement downloads of unknown charset into
// UTF-8 readers. Spanish banks export CSV as UTF-8 (with or without BOM),
// Windows-1252 or ISO-8859-15, depending on the export path.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that whatever it reads comes out as UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. content that is already valid UTF-8 passes through untouched
//  3. heuristic charset detection via chardet
//  4. fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek enough bytes for BOM detection and charset heuristics.
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		// Drop the 3-byte BOM; the rest is plain UTF-8.
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, detectLegacyCharmap(buf).NewDecoder()), nil
}

// detectLegacyCharmap picks a single-byte charmap for content that is not
// UTF-8. Windows-1252 is the fallback: it decodes every byte, so the reader
// never fails, at worst a few accented characters come out wrong.
func detectLegacyCharmap(buf []byte) *charmap.Charmap {
	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(buf)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	default:
		return charmap.Windows1252
	}
}
