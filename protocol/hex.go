package protocol

import (
	"encoding/hex"
	"strings"
)

// String renders the address as 12 uppercase hex digits with no
// separators, the format used by the mac_addr attribute.
func (m MAC) String() string {
	return strings.ToUpper(hex.EncodeToString(m[:]))
}

// ParseMAC decodes exactly MACHexLength hex digits (either case) into a
// MAC. Anything else yields a *ParseError of kind InvalidHex.
func ParseMAC(s string) (MAC, error) {
	var m MAC
	if len(s) != MACHexLength {
		return m, &ParseError{Kind: InvalidHex, Input: s}
	}
	if _, err := hex.Decode(m[:], []byte(s)); err != nil {
		return MAC{}, &ParseError{Kind: InvalidHex, Input: s, Err: err}
	}
	return m, nil
}

// FirstToken returns the first whitespace-delimited token of s, or "" if
// s is blank.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
