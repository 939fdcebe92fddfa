package mailparse

import (
	"fmt"
	"mime"

	"github.com/emersion/go-message/charset"
)

// headerDecoder resolves encoded-word charsets through the same table the
// body decoder uses, so headers and bodies agree on what is decodable.
var headerDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to
// plain text. Unencoded segments pass through unchanged; a segment with an
// unknown charset or broken encoding is an error, not a silent truncation.
func DecodeHeader(encoded string) (string, error) {
	decoded, err := headerDecoder.DecodeHeader(encoded)
	if err != nil {
		return "", fmt.Errorf("decode header: %w", err)
	}
	return decoded, nil
}
