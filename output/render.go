package output

import (
	"io"
	"strconv"
	"sync"

	"github.com/CN-TU/go-flowfmt/flows"
)

// TimeLayout is the layout of rendered timestamps.
const TimeLayout = "2006-01-02 15:04:05.000"

var bufferPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 512)
		return &b
	},
}

// Render writes the line for rec to w. Nothing but the format is written, i.e. no line terminator
// is added. The only error returned is the one of w.
func (p *Plan) Render(w io.Writer, ctx *Context, rec flows.Record) error {
	bp := bufferPool.Get().(*[]byte)
	buf := p.AppendRecord((*bp)[:0], ctx, rec)
	_, err := w.Write(buf)
	*bp = buf
	bufferPool.Put(bp)
	return err
}

// AppendRecord appends the line for rec to dst and returns the extended buffer.
//
// Fields that don't exist in the dialect of rec are rendered as "0" for numeric fields and as
// "-" for text fields.
func (p *Plan) AppendRecord(dst []byte, ctx *Context, rec flows.Record) []byte {
	tag := rec.Tag()
	for i := range p.steps {
		s := &p.steps[i]
		if s.token == nil {
			dst = append(dst, s.literal...)
			continue
		}
		start := len(dst)
		if !s.token.Meaningful(tag) {
			dst = append(dst, s.token.placeholder()...)
			if !p.machine {
				dst = pad(dst, start, s.token.Width(ctx.mode), s.token.right)
			}
			continue
		}
		dst = p.appendField(dst, ctx, s, rec)
		if !p.machine && s.token.column == fixedColumn {
			dst = pad(dst, start, s.token.width, s.token.right)
		}
	}
	return dst
}

func appendTime(dst []byte, ctx *Context, t flows.DateTimeMilliseconds) []byte {
	return flows.ToTime(t, ctx.location()).AppendFormat(dst, TimeLayout)
}

func appendUint(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

func (p *Plan) appendField(dst []byte, ctx *Context, s *step, rec flows.Record) []byte {
	switch s.token.Field {
	case FieldFirstSeen:
		return appendTime(dst, ctx, rec.FirstSeen())
	case FieldLastSeen:
		return appendTime(dst, ctx, rec.LastSeen())
	case FieldReceived:
		return appendTime(dst, ctx, rec.Received())
	case FieldDuration:
		d := flows.Span(rec.FirstSeen(), rec.LastSeen())
		return strconv.AppendFloat(dst, float64(d)/float64(flows.SecondsInMilliseconds), 'f', 3, 64)
	case FieldProtocol:
		proto := rec.Protocol()
		if !s.plain && ctx.Protocols != nil {
			if name, ok := ctx.Protocols.ProtocolName(proto); ok {
				return append(dst, name...)
			}
		}
		return appendUint(dst, uint64(proto))
	case FieldSrcAddr:
		return appendAddressColumn(dst, rec.SourceAddress(), ctx.mode, p.machine)
	case FieldDstAddr:
		return appendAddressColumn(dst, rec.DestinationAddress(), ctx.mode, p.machine)
	case FieldSrcPort:
		return appendUint(dst, uint64(rec.SourcePort()))
	case FieldDstPort:
		return appendPort(dst, rec.DestinationPort(), isICMP(rec.Protocol()))
	case FieldSrcSocket:
		return appendSocket(dst, ctx, rec.SourceAddress(), rec.SourcePort(), false, false, p.machine)
	case FieldDstSocket:
		return appendSocket(dst, ctx, rec.DestinationAddress(), rec.DestinationPort(), isICMP(rec.Protocol()), false, p.machine)
	case FieldGeoSrcSocket:
		return appendSocket(dst, ctx, rec.SourceAddress(), rec.SourcePort(), false, true, p.machine)
	case FieldGeoDstSocket:
		return appendSocket(dst, ctx, rec.DestinationAddress(), rec.DestinationPort(), isICMP(rec.Protocol()), true, p.machine)
	case FieldSrcAS:
		return appendUint(dst, uint64(rec.SourceAS()))
	case FieldDstAS:
		return appendUint(dst, uint64(rec.DestinationAS()))
	case FieldInputInterface:
		return appendUint(dst, uint64(rec.InputInterface()))
	case FieldOutputInterface:
		return appendUint(dst, uint64(rec.OutputInterface()))
	case FieldRouter:
		return appendAddressColumn(dst, rec.RouterAddress(), ctx.mode, p.machine)
	case FieldNextHop:
		return appendAddressColumn(dst, rec.NextHop(), ctx.mode, p.machine)
	case FieldPackets, FieldInPackets:
		return appendNumber(dst, rec.Packets(), s.plain)
	case FieldBytes, FieldInBytes:
		return appendNumber(dst, rec.Bytes(), s.plain)
	case FieldFlows:
		return appendNumber(dst, rec.Flows(), s.plain)
	case FieldOutPackets:
		return appendNumber(dst, rec.OutPackets(), s.plain)
	case FieldOutBytes:
		return appendNumber(dst, rec.OutBytes(), s.plain)
	case FieldPPS:
		pps, _, _ := rates(rec)
		return appendNumber(dst, pps, s.plain)
	case FieldBPS:
		_, bps, _ := rates(rec)
		return appendNumber(dst, bps, s.plain)
	case FieldBPP:
		_, _, bpp := rates(rec)
		return appendNumber(dst, bpp, s.plain)
	case FieldFlags:
		return appendFlags(dst, rec.TCPFlags())
	case FieldTos, FieldSrcTos:
		return appendUint(dst, uint64(rec.SourceTos()))
	case FieldDstTos:
		return appendUint(dst, uint64(rec.DestinationTos()))
	case FieldEvent:
		return appendFirewallEvent(dst, rec.FirewallEvent(), s.plain)
	case FieldExtEvent:
		return appendExtendedEvent(dst, rec.FirewallExtEvent(), s.plain)
	case FieldXlateSrcAddr:
		return appendAddressColumn(dst, rec.XlateSourceAddress(), ctx.mode, p.machine)
	case FieldXlateDstAddr:
		return appendAddressColumn(dst, rec.XlateDestinationAddress(), ctx.mode, p.machine)
	case FieldXlateSrcPort:
		return appendUint(dst, uint64(rec.XlateSourcePort()))
	case FieldXlateDstPort:
		return appendUint(dst, uint64(rec.XlateDestinationPort()))
	case FieldXlateSrcSocket, FieldNATSrcSocket:
		return appendSocket(dst, ctx, rec.XlateSourceAddress(), rec.XlateSourcePort(), false, false, p.machine)
	case FieldXlateDstSocket, FieldNATDstSocket:
		return appendSocket(dst, ctx, rec.XlateDestinationAddress(), rec.XlateDestinationPort(), false, false, p.machine)
	case FieldNATEvent:
		return appendNATEvent(dst, rec.NATEvent(), s.plain)
	}
	return dst
}
