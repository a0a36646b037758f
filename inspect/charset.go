package inspect

import (
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// charsetReader converts encoded-word text in any charset known to the IANA
// index into UTF-8. Unknown charsets are passed through as-is.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if charset == "" {
		return input, nil
	}

	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return input, nil
	}

	return transform.NewReader(input, enc.NewDecoder()), nil
}

var wordDecoder = &mime.WordDecoder{CharsetReader: charsetReader}

// DecodeHeader decodes RFC 2047 encoded-words in a header value. If decoding
// fails, the raw value is returned.
func DecodeHeader(value string) string {
	dec, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return dec
}
