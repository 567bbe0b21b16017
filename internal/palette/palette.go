// Package palette resolves color names from settings files to indices
// in the 256-color terminal palette.
package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownColor is returned when a name is neither in the table nor a
// numeric palette index.
var ErrUnknownColor = errors.New("unknown color name")

// names covers the classic 16 colors plus the extended aliases used by
// the built-in branching models. Numeric literals "0" to "255" select
// palette entries directly.
var names = map[string]uint8{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
	"navy":           17,
	"teal":           30,
	"turquoise":      45,
	"lime":           46,
	"indigo":         54,
	"purple":         93,
	"brown":          130,
	"violet":         177,
	"salmon":         209,
	"orange":         214,
	"pink":           218,
	"gold":           220,
	"dark_gray":      238,
	"gray":           245,
	"grey":           245,
	"light_gray":     250,
}

// Lookup resolves a color name or numeric literal to a palette index.
func Lookup(name string) (uint8, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if idx, ok := names[key]; ok {
		return idx, nil
	}
	if n, err := strconv.ParseUint(key, 10, 8); err == nil {
		return uint8(n), nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownColor)
}

// Name returns the canonical name for a palette index, or its decimal
// form when the index has no name.
func Name(idx uint8) string {
	if name, ok := indexNames[idx]; ok {
		return name
	}
	return strconv.Itoa(int(idx))
}

var indexNames = func() map[uint8]string {
	m := make(map[uint8]string, len(names))
	for name, idx := range names {
		if prev, ok := m[idx]; !ok || name < prev {
			m[idx] = name
		}
	}
	return m
}()
