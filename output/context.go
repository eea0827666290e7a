package output

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/CN-TU/go-flowfmt/resolve"
)

// Mode is the addressing mode, which determines width and form of address columns.
type Mode uint8

const (
	// ModeV4 prints addresses in 16 columns. Longer IPv6 addresses are condensed.
	ModeV4 Mode = iota
	// ModeV6 prints addresses in 39 columns.
	ModeV6
	// ModeDual prints IPv4 addresses in 16 and IPv6 addresses in 39 columns.
	ModeDual
)

const (
	v4Width = 16
	v6Width = 39
)

// ErrUnknownMode is returned by ParseMode for unknown mode names.
var ErrUnknownMode = errors.New("unknown addressing mode")

func (m Mode) String() string {
	switch m {
	case ModeV4:
		return "v4"
	case ModeV6:
		return "v6"
	case ModeDual:
		return "dual"
	}
	return "<InvalidMode>"
}

// ParseMode returns the mode named s (v4, v6, or dual).
func ParseMode(s string) (Mode, error) {
	for m := ModeV4; m <= ModeDual; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// addressWidth is the column width used in headers and placeholders
func (m Mode) addressWidth() int {
	if m == ModeV6 {
		return v6Width
	}
	return v4Width
}

// widthFor returns the column width for an address with the given version
func (m Mode) widthFor(v6 bool) int {
	switch m {
	case ModeV6:
		return v6Width
	case ModeDual:
		if v6 {
			return v6Width
		}
	}
	return v4Width
}

// ProtocolResolver maps protocol numbers to names.
type ProtocolResolver interface {
	ProtocolName(proto uint8) (string, bool)
}

// GeoResolver maps addresses to two letter country codes.
type GeoResolver interface {
	Country(ip net.IP) (string, bool)
}

// Context holds the settings of a rendering session. A context must not be changed while a
// render call using it is running.
type Context struct {
	mode Mode
	// Location is the time zone of rendered timestamps. nil means local time.
	Location *time.Location
	// Protocols resolves protocol names. nil prints protocol numbers.
	Protocols ProtocolResolver
	// Geo resolves country codes for geo tokens. nil prints "--".
	Geo GeoResolver
	// Quiet suppresses header and summary lines.
	Quiet bool
}

// NewContext returns a context with the given addressing mode, local time, and the default
// protocol names.
func NewContext(mode Mode) *Context {
	return &Context{
		mode:      mode,
		Location:  time.Local,
		Protocols: resolve.DefaultProtocols,
	}
}

// SetAddressingMode changes the addressing mode for subsequently rendered records.
func (c *Context) SetAddressingMode(mode Mode) {
	c.mode = mode
}

// AddressingMode returns the current addressing mode.
func (c *Context) AddressingMode() Mode {
	return c.mode
}

func (c *Context) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
