package deck

import (
	"strconv"
	"strings"

	"github.com/exlskills/storyboardutil/pptx"
	"github.com/pkg/errors"
)

var (
	DefaultFontColor = pptx.RGB{R: 0x11, G: 0x11, B: 0x11}
	DefaultBgColor   = pptx.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
)

// ParseHexColor accepts "#RGB", "RGB", "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (pptx.RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return pptx.RGB{}, errors.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return pptx.RGB{}, errors.Errorf("invalid hex color %q", s)
	}
	return pptx.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ColorOr parses s, returning fallback when it is malformed.
func ColorOr(s string, fallback pptx.RGB) pptx.RGB {
	c, err := ParseHexColor(s)
	if err != nil {
		Log.Debugf("Using default color #%s: %v", fallback.Hex(), err)
		return fallback
	}
	return c
}
