package lorawan

import (
	"encoding/binary"
	"errors"
	"fmt"

	lw "github.com/brocaar/lorawan"

	"github.com/iburimskiy/lorawan-deck/internal/deck"
)

const (
	// MaxFPort is the highest application port; 224 is reserved for
	// conformance testing and 225..255 are RFU.
	MaxFPort = 223
	// MaxPayload is the largest FRMPayload at the fastest data rates.
	MaxPayload = 242

	micLen = 4
	// MHDR | DevAddr | FCtrl | FCnt | FPort with no FOpts
	headerLen = 1 + 4 + 1 + 2 + 1
)

var (
	ErrFPort       = errors.New("lorawan: fport out of range")
	ErrPayloadSize = errors.New("lorawan: payload too large")
	ErrShortFrame  = errors.New("lorawan: frame too short")
)

// UplinkParams describes a data uplink without FOpts.
type UplinkParams struct {
	DevAddr   uint32
	FCnt      uint32
	FPort     uint8
	Payload   []byte
	ADR       bool
	ACK       bool
	Confirmed bool
	NwkSKey   []byte
	AppSKey   []byte
}

// Span is a half-open byte range [Start, End) of a frame.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// Frame is the PHYPayload of an uplink with the byte range of every MAC
// field. Preamble and PHDR belong to the radio and have no bytes here.
type Frame struct {
	Bytes     []byte
	Spans     map[deck.FieldKey]Span
	Plaintext []byte
	MIC       [4]byte
}

// Field returns the bytes of field k, or nil for radio-only fields.
func (f *Frame) Field(k deck.FieldKey) []byte {
	s, ok := f.Spans[k]
	if !ok {
		return nil
	}
	return f.Bytes[s.Start:s.End]
}

func devAddrOf(a uint32) lw.DevAddr {
	var d lw.DevAddr
	binary.BigEndian.PutUint32(d[:], a)
	return d
}

// BuildUplink assembles MHDR | DevAddr | FCtrl | FCnt | FPort | FRMPayload |
// MIC. FPort 0 payloads are MAC commands and are encrypted with the NwkSKey,
// any other port with the AppSKey.
func BuildUplink(p UplinkParams) (*Frame, error) {
	if p.FPort > MaxFPort {
		return nil, fmt.Errorf("%w: %d", ErrFPort, p.FPort)
	}
	if len(p.Payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadSize, len(p.Payload))
	}
	nwkSKey, err := aesKey(p.NwkSKey)
	if err != nil {
		return nil, fmt.Errorf("nwk_s_key: %w", err)
	}
	appSKey, err := aesKey(p.AppSKey)
	if err != nil {
		return nil, fmt.Errorf("app_s_key: %w", err)
	}
	payloadKey := appSKey
	if p.FPort == 0 {
		payloadKey = nwkSKey
	}

	mtype := lw.UnconfirmedDataUp
	if p.Confirmed {
		mtype = lw.ConfirmedDataUp
	}
	fPort := p.FPort
	mac := &lw.MACPayload{
		FHDR: lw.FHDR{
			DevAddr: devAddrOf(p.DevAddr),
			FCtrl:   lw.FCtrl{ADR: p.ADR, ACK: p.ACK},
			FCnt:    p.FCnt,
		},
		FPort: &fPort,
	}
	if len(p.Payload) > 0 {
		mac.FRMPayload = []lw.Payload{&lw.DataPayload{Bytes: append([]byte(nil), p.Payload...)}}
	}
	phy := lw.PHYPayload{
		MHDR:       lw.MHDR{MType: mtype, Major: lw.LoRaWANR1},
		MACPayload: mac,
	}

	if err := phy.EncryptFRMPayload(payloadKey); err != nil {
		return nil, fmt.Errorf("encrypt payload: %w", err)
	}
	if err := phy.SetUplinkDataMIC(lw.LoRaWAN1_0, 0, 0, 0, nwkSKey, nwkSKey); err != nil {
		return nil, fmt.Errorf("compute mic: %w", err)
	}
	b, err := phy.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal frame: %w", err)
	}
	if len(b) != headerLen+len(p.Payload)+micLen {
		return nil, fmt.Errorf("lorawan: unexpected frame length %d", len(b))
	}

	micStart := len(b) - micLen
	return &Frame{
		Bytes: b,
		Spans: map[deck.FieldKey]Span{
			deck.FieldMHDR:    {0, 1},
			deck.FieldDevAddr: {1, 5},
			deck.FieldFCtrl:   {5, 6},
			deck.FieldFCnt:    {6, 8},
			deck.FieldFPort:   {8, headerLen},
			deck.FieldPayload: {headerLen, micStart},
			deck.FieldMIC:     {micStart, len(b)},
		},
		Plaintext: append([]byte(nil), p.Payload...),
		MIC:       phy.MIC,
	}, nil
}

// VerifyMIC checks the trailing MIC of a data uplink. fCnt is the full
// 32-bit counter; the frame only carries its low 16 bits.
func VerifyMIC(nwkSKey []byte, fCnt uint32, b []byte) (bool, error) {
	if len(b) < headerLen-1+micLen {
		return false, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(b))
	}
	key, err := aesKey(nwkSKey)
	if err != nil {
		return false, err
	}
	var phy lw.PHYPayload
	if err := phy.UnmarshalBinary(b); err != nil {
		return false, fmt.Errorf("decode frame: %w", err)
	}
	mac, ok := phy.MACPayload.(*lw.MACPayload)
	if !ok {
		return false, fmt.Errorf("lorawan: not a data frame (%v)", phy.MHDR.MType)
	}
	mac.FHDR.FCnt = fCnt
	return phy.ValidateUplinkDataMIC(lw.LoRaWAN1_0, 0, 0, 0, key, key)
}
