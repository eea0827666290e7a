package output

import (
	"io"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/CN-TU/go-flowfmt/flows"
)

// Summary accumulates the totals written by Epilog.
type Summary struct {
	Records uint64
	Flows   uint64
	Packets uint64
	Bytes   uint64
	// First and Last are the earliest start and latest end of the added records
	First, Last flows.DateTimeMilliseconds
}

// Add adds rec to the summary.
func (s *Summary) Add(rec flows.Record) {
	if s.Records == 0 || rec.FirstSeen() < s.First {
		s.First = rec.FirstSeen()
	}
	if rec.LastSeen() > s.Last {
		s.Last = rec.LastSeen()
	}
	s.Records++
	flowCount := rec.Flows()
	if flowCount == 0 {
		flowCount = 1
	}
	s.Flows += flowCount
	s.Packets += rec.Packets() + rec.OutPackets()
	s.Bytes += rec.Bytes() + rec.OutBytes()
}

// Rates returns the average bits per second, packets per second, and bytes per packet over the
// time span covered by the summary.
func (s *Summary) Rates() (bps, pps, bpp uint64) {
	if s.Packets > 0 {
		bpp = s.Bytes / s.Packets
	}
	duration := flows.Span(s.First, s.Last)
	if duration == 0 {
		return
	}
	ms := float64(duration)
	bps = uint64(float64(s.Bytes) * 8000 / ms)
	pps = uint64(float64(s.Packets) * 1000 / ms)
	return
}

// AppendProlog appends the header line of this plan including the line terminator.
func (p *Plan) AppendProlog(dst []byte, ctx *Context) []byte {
	for _, s := range p.steps {
		if s.token == nil {
			dst = append(dst, s.literal...)
			continue
		}
		width := s.token.Width(ctx.mode)
		if s.token.right {
			dst = append(dst, runewidth.FillLeft(s.token.Title, width)...)
		} else {
			dst = append(dst, runewidth.FillRight(s.token.Title, width)...)
		}
	}
	return append(dst, '\n')
}

// Prolog writes the header line. Machine readable layouts and quiet contexts have no header.
func (p *Plan) Prolog(w io.Writer, ctx *Context) error {
	if p.machine || ctx.Quiet {
		return nil
	}
	_, err := w.Write(p.AppendProlog(nil, ctx))
	return err
}

// AppendEpilog appends the trailing line for the layout of this plan. Layouts without epilog
// append nothing.
func (p *Plan) AppendEpilog(dst []byte, sum *Summary) []byte {
	switch p.layout.Epilog {
	case EpilogEvents:
		dst = append(dst, "Summary: total events: "...)
		dst = appendUint(dst, sum.Records)
	case EpilogSummary:
		bps, pps, bpp := sum.Rates()
		dst = append(dst, "Summary: total flows: "...)
		dst = appendNumber(dst, sum.Flows, p.plain)
		dst = append(dst, ", total bytes: "...)
		dst = appendNumber(dst, sum.Bytes, p.plain)
		dst = append(dst, ", total packets: "...)
		dst = appendNumber(dst, sum.Packets, p.plain)
		dst = append(dst, ", avg bps: "...)
		dst = appendNumber(dst, bps, p.plain)
		dst = append(dst, ", avg pps: "...)
		dst = appendNumber(dst, pps, p.plain)
		dst = append(dst, ", avg bpp: "...)
		dst = appendNumber(dst, bpp, p.plain)
	default:
		return dst
	}
	return append(dst, '\n')
}

// Epilog writes the trailing line. Machine readable layouts and quiet contexts have no epilog.
func (p *Plan) Epilog(w io.Writer, ctx *Context, sum *Summary) error {
	if p.machine || ctx.Quiet {
		return nil
	}
	if sum == nil {
		sum = &Summary{}
	}
	buf := p.AppendEpilog(nil, sum)
	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}
