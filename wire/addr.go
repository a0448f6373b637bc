package wire

import (
	"net/netip"
)

// Addr is a socket address in the RakNet layout:
//
//	4 | ip(4) | port(u16 be)
//	6 | reserved(2) | port(u16 be) | flow(4) | ip(16) | scope(4)
//
// Reserved, flow and scope bytes are written as zero and ignored on read.
// IPv4-mapped IPv6 addresses keep the family 6 layout so they decode to the
// same value. Zones are not carried.
type Addr struct {
	netip.AddrPort
}

func AddrFrom(ap netip.AddrPort) Addr { return Addr{ap} }

func (a Addr) Encode(w *Writer) {
	ip := a.Addr()
	if !ip.IsValid() {
		ip = netip.IPv4Unspecified()
	}
	if ip.Is4() {
		b := ip.As4()
		w.buf = append(w.buf, 4)
		w.buf = append(w.buf, b[:]...)
		N16(a.Port()).Encode(w)
		return
	}
	b := ip.As16()
	w.buf = append(w.buf, 6, 0, 0)
	N16(a.Port()).Encode(w)
	w.buf = append(w.buf, 0, 0, 0, 0)
	w.buf = append(w.buf, b[:]...)
	w.buf = append(w.buf, 0, 0, 0, 0)
}

func (a *Addr) Decode(r *Reader) error {
	family, err := r.ReadByte()
	if err != nil {
		return err
	}
	switch family {
	case 4:
		b, err := r.Take(4)
		if err != nil {
			return err
		}
		var port N16
		if err := port.Decode(r); err != nil {
			return err
		}
		a.AddrPort = netip.AddrPortFrom(netip.AddrFrom4([4]byte(b)), uint16(port))
		return nil
	case 6:
		if !r.Advance(2) {
			return ErrTruncated
		}
		var port N16
		if err := port.Decode(r); err != nil {
			return err
		}
		if !r.Advance(4) {
			return ErrTruncated
		}
		b, err := r.Take(16)
		if err != nil {
			return err
		}
		if !r.Advance(4) {
			return ErrTruncated
		}
		a.AddrPort = netip.AddrPortFrom(netip.AddrFrom16([16]byte(b)), uint16(port))
		return nil
	default:
		return ErrAddressFamily
	}
}
