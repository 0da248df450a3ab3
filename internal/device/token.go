package device

import (
	"fmt"
	"strconv"
)

// Unit markers accepted in the final token byte.
const (
	UnitFahrenheit = 'F'
	UnitCelsius    = 'C'
)

// splitToken separates a staged token into its numeric prefix and unit
// marker. The unit is always the final byte of the token, which matches the
// fixed offset-3 read for full four-byte tokens and stays deterministic for
// shorter ones. One trailing newline or NUL is trimmed first, since both
// terminal echo and C-string writers append a terminator that was never
// part of the token. Tokens shorter than two bytes cannot carry both a
// digit and a unit and are rejected.
func splitToken(staged []byte) (digits string, unit byte, err error) {
	token := staged
	if n := len(token); n > 0 && (token[n-1] == '\n' || token[n-1] == 0) {
		token = token[:n-1]
	}
	if len(token) < 2 {
		return "", 0, fmt.Errorf("%w: token %q too short", ErrMalformedNumber, token)
	}
	unit = token[len(token)-1]
	return string(token[:len(token)-1]), unit, nil
}

// parseValue parses the numeric prefix as a signed base-10 integer.
func parseValue(digits string) (int64, error) {
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, digits)
	}
	return value, nil
}

// fahrenheitToCelsius converts with truncating integer division, matching
// the endpoint's documented (v-32)*5/9 rule.
func fahrenheitToCelsius(v int64) int64 {
	return (v - 32) * 5 / 9
}

// celsiusToFahrenheit converts with truncating integer division, matching
// the endpoint's documented v*9/5+32 rule.
func celsiusToFahrenheit(v int64) int64 {
	return v*9/5 + 32
}
