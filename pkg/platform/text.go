package platform

import (
	"encoding/binary"
	"encoding/json"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func checkUTF8(what, s string) error {
	if !utf8.ValidString(s) {
		return encodingError(what, nil)
	}
	return nil
}

// checkUTF16 rejects unpaired surrogates. The x/text decoder would silently
// replace them with U+FFFD.
func checkUTF16(what string, units []uint16) error {
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		if !utf16.IsSurrogate(u) {
			continue
		}
		if u >= 0xDC00 || i+1 >= len(units) {
			return encodingError(what, nil)
		}
		next := rune(units[i+1])
		if next < 0xDC00 || next > 0xDFFF {
			return encodingError(what, nil)
		}
		i++
	}
	return nil
}

// utf16ToString validates and transcodes UCS-2/UTF-16 code units to UTF-8.
func utf16ToString(what string, units []uint16) (string, error) {
	if err := checkUTF16(what, units); err != nil {
		return "", err
	}

	buf := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	out, err := utf16le.NewDecoder().Bytes(buf)
	if err != nil {
		return "", encodingError(what, err)
	}
	return string(out), nil
}

// StringToUTF16 encodes s as UTF-16 code units, the form accepted by the
// wide entry points.
func StringToUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func checkJSON(what, payload string) error {
	if err := checkUTF8(what, payload); err != nil {
		return err
	}
	if !json.Valid([]byte(payload)) {
		return encodingError(what+": not a JSON document", nil)
	}
	return nil
}
