// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
)

// utf8BOM is the UTF-8 byte-order mark some exporters prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode turns raw file bytes into text. It first tries UTF-8 with an
// optional BOM stripped; if the bytes are not valid UTF-8 it falls back
// to Big5, which Taiwanese financial data exports commonly use. Both
// attempts failing is a fatal decoding error.
//
// The return reports whether the Big5 fallback was taken, so the caller
// can surface it in the progress trace.
func decode(raw []byte) (text string, usedBig5 bool, err error) {
	trimmed := bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(trimmed) {
		return string(trimmed), false, nil
	}

	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false, fmt.Errorf("decoding source as Big5: %w", err)
	}
	// The x/text decoder substitutes U+FFFD for bytes outside the Big5
	// table instead of erroring; Big5 itself cannot encode U+FFFD, so
	// its presence means the fallback failed too.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", false, fmt.Errorf("source is neither valid UTF-8 nor valid Big5")
	}
	return string(decoded), true, nil
}
