package attr

import (
	"strconv"
	"strings"

	"github.com/moffa90/go-edgemcu/protocol"
)

// ParseInt parses attribute input the way the kernel's kstrtoint(s, 0)
// does.
func ParseInt(s string) (int, error) {
	body := strings.TrimSuffix(s, "\n")
	if body == "" || strings.ContainsRune(body, '_') {
		return 0, &protocol.ParseError{Kind: protocol.InvalidInteger, Input: s}
	}

	digits := strings.TrimLeft(body, "+-")
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'b', 'B', 'o', 'O':
			return 0, &protocol.ParseError{Kind: protocol.InvalidInteger, Input: s}
		}
	}

	v, err := strconv.ParseInt(body, 0, 32)
	if err != nil {
		return 0, &protocol.ParseError{Kind: protocol.InvalidInteger, Input: s, Err: err}
	}
	return int(v), nil
}
