// Package raknet declares the RakNet offline handshake packets as mcwire
// records. Only the datagram layouts are covered; reliability, ordering and
// fragmentation belong to the connection layer.
package raknet

import (
	"fmt"

	"github.com/unkn0wn-root/mcwire"
	"github.com/unkn0wn-root/mcwire/wire"
)

// PacketID is the leading byte of an offline datagram.
type PacketID uint8

const (
	IDConnectedPing                  PacketID = 0
	IDUnconnectedPing                PacketID = 1
	IDUnconnectedPingOpenConnections PacketID = 2
	IDConnectedPong                  PacketID = 3
	IDDetectLostConnections          PacketID = 4
	IDOpenConnectionRequest1         PacketID = 5
	IDOpenConnectionReply1           PacketID = 6
	IDOpenConnectionRequest2         PacketID = 7
	IDOpenConnectionReply2           PacketID = 8
	IDConnectionRequest              PacketID = 9
	IDConnectionRequestAccepted      PacketID = 16
	IDNewIncomingConnection          PacketID = 19
	IDDisconnect                     PacketID = 21
	IDIncompatibleProtocol           PacketID = 25
	IDUnconnectedPong                PacketID = 28
	IDGame                           PacketID = 254
	IDUnknown                        PacketID = 255
)

var idNames = map[PacketID]string{
	IDConnectedPing:                  "ConnectedPing",
	IDUnconnectedPing:                "UnconnectedPing",
	IDUnconnectedPingOpenConnections: "UnconnectedPingOpenConnections",
	IDConnectedPong:                  "ConnectedPong",
	IDDetectLostConnections:          "DetectLostConnections",
	IDOpenConnectionRequest1:         "OpenConnectionRequest1",
	IDOpenConnectionReply1:           "OpenConnectionReply1",
	IDOpenConnectionRequest2:         "OpenConnectionRequest2",
	IDOpenConnectionReply2:           "OpenConnectionReply2",
	IDConnectionRequest:              "ConnectionRequest",
	IDConnectionRequestAccepted:      "ConnectionRequestAccepted",
	IDNewIncomingConnection:          "NewIncomingConnection",
	IDDisconnect:                     "Disconnect",
	IDIncompatibleProtocol:           "IncompatibleProtocol",
	IDUnconnectedPong:                "UnconnectedPong",
	IDGame:                           "Game",
}

func (id PacketID) String() string {
	if s, ok := idNames[id]; ok {
		return s
	}
	return fmt.Sprintf("PacketID(%d)", uint8(id))
}

// Packet is an offline datagram. The concrete types below are its variants.
type Packet interface {
	ID() PacketID
}

type ConnectedPing struct {
	PingTime wire.B64
}

type UnconnectedPing struct {
	PingTime   wire.B64
	Magic      Magic
	ClientGUID wire.B64
}

// UnconnectedPingOpenConnections is answered only by servers with free slots.
type UnconnectedPingOpenConnections UnconnectedPing

type ConnectedPong struct {
	PingTime wire.B64
	PongTime wire.B64
}

type DetectLostConnections struct{}

// OpenConnectionRequest1 is padded with zeros up to the MTU the client is
// probing.
type OpenConnectionRequest1 struct {
	Magic    Magic
	Protocol uint8
	Padding  wire.RestBytes
}

type OpenConnectionReply1 struct {
	Magic  Magic
	GUID   wire.B64
	Secure bool
	MTU    wire.N16
}

type OpenConnectionRequest2 struct {
	Magic  Magic
	Server wire.Addr
	MTU    wire.N16
	GUID   wire.B64
}

type OpenConnectionReply2 struct {
	Magic  Magic
	GUID   wire.B64
	Client wire.Addr
	MTU    wire.N16
	Secure bool
}

type IncompatibleProtocol struct {
	Protocol uint8
	Magic    Magic
	GUID     wire.B64
}

type UnconnectedPong struct {
	PongTime wire.B64
	GUID     wire.B64
	Magic    Magic
	Data     wire.String[wire.N16] // server advertisement, "MCPE;motd;..."
}

type Disconnect struct{}

// Game wraps an encapsulated game packet batch.
type Game struct {
	Payload wire.RestBytes
}

// Unknown is what Decode returns for an ID it has no layout for. It cannot
// be encoded.
type Unknown struct {
	Code PacketID
	Body []byte
}

func (ConnectedPing) ID() PacketID                  { return IDConnectedPing }
func (UnconnectedPing) ID() PacketID                { return IDUnconnectedPing }
func (UnconnectedPingOpenConnections) ID() PacketID { return IDUnconnectedPingOpenConnections }
func (ConnectedPong) ID() PacketID                  { return IDConnectedPong }
func (DetectLostConnections) ID() PacketID          { return IDDetectLostConnections }
func (OpenConnectionRequest1) ID() PacketID         { return IDOpenConnectionRequest1 }
func (OpenConnectionReply1) ID() PacketID           { return IDOpenConnectionReply1 }
func (OpenConnectionRequest2) ID() PacketID         { return IDOpenConnectionRequest2 }
func (OpenConnectionReply2) ID() PacketID           { return IDOpenConnectionReply2 }
func (IncompatibleProtocol) ID() PacketID           { return IDIncompatibleProtocol }
func (UnconnectedPong) ID() PacketID                { return IDUnconnectedPong }
func (Disconnect) ID() PacketID                     { return IDDisconnect }
func (Game) ID() PacketID                           { return IDGame }
func (u Unknown) ID() PacketID                      { return u.Code }

// udpOverhead is the IP and UDP header size the MTU accounts for.
const udpOverhead = 28

// NewOpenConnectionRequest1 pads the request so the datagram plus headers
// is exactly mtu bytes.
func NewOpenConnectionRequest1(protocol uint8, mtu int) OpenConnectionRequest1 {
	n := mtu - udpOverhead - 1 - len(magic) - 1
	return OpenConnectionRequest1{Protocol: protocol, Padding: make(wire.RestBytes, max(n, 0))}
}

// MTU is the size the request was padded to.
func (p OpenConnectionRequest1) MTU() int {
	return udpOverhead + 1 + len(magic) + 1 + len(p.Padding)
}

func variant(p Packet) mcwire.VariantSpec {
	return mcwire.VariantSpec{Type: p, Discriminant: mcwire.At(int64(p.ID()))}
}

func init() {
	mcwire.MustRegisterUnion[Packet](mcwire.UnionSpec{
		Discriminant: "u8",
		Variants: []mcwire.VariantSpec{
			variant(ConnectedPing{}),
			variant(UnconnectedPing{}),
			variant(UnconnectedPingOpenConnections{}),
			variant(ConnectedPong{}),
			variant(DetectLostConnections{}),
			variant(OpenConnectionRequest1{}),
			variant(OpenConnectionReply1{}),
			variant(OpenConnectionRequest2{}),
			variant(OpenConnectionReply2{}),
			variant(IncompatibleProtocol{}),
			variant(UnconnectedPong{}),
			variant(Disconnect{}),
			variant(Game{}),
			{Type: Unknown{}, Discriminant: mcwire.At(int64(IDUnknown)), Fallback: true},
		},
	})
}

// Encode writes p as a datagram.
func Encode(p Packet) ([]byte, error) {
	return mcwire.Marshal(&p)
}

// Decode reads one datagram. IDs without a layout come back as Unknown with
// the undecoded body.
func Decode(b []byte) (Packet, error) {
	r := wire.NewReader(b)
	p, err := mcwire.DecodeFrom[Packet](r)
	if err != nil {
		return nil, err
	}
	if _, ok := p.(Unknown); ok {
		return Unknown{Code: PacketID(b[0]), Body: b[1:]}, nil
	}
	if r.Remaining() > 0 {
		return nil, fmt.Errorf("raknet: %s: %w", p.ID(), mcwire.ErrTrailingBytes)
	}
	return p, nil
}
