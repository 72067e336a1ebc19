package ipa

import (
	"fmt"
	"time"
)

// HdrConfig describes the fixed header a pipe prepends or strips.
type HdrConfig struct {
	Len                uint32 `json:"len"`
	OfstMetadataValid  bool   `json:"ofst_metadata_valid,omitempty"`
	OfstMetadata       uint32 `json:"ofst_metadata,omitempty"`
	AdditionalConstLen uint32 `json:"additional_const_len,omitempty"`
	OfstPktSizeValid   bool   `json:"ofst_pkt_size_valid,omitempty"`
	OfstPktSize        uint32 `json:"ofst_pkt_size,omitempty"`
	A5Mux              bool   `json:"a5_mux,omitempty"`
}

// HdrExtConfig extends HdrConfig with length and padding handling.
type HdrExtConfig struct {
	BigEndian            bool   `json:"big_endian,omitempty"`
	TotalLenOrPadValid   bool   `json:"total_len_or_pad_valid,omitempty"`
	TotalLenOrPadIsPad   bool   `json:"total_len_or_pad_is_pad,omitempty"`
	PayloadLenIncPadding bool   `json:"payload_len_inc_padding,omitempty"`
	TotalLenOrPadOffset  uint32 `json:"total_len_or_pad_offset,omitempty"`
	PadToAlignment       uint32 `json:"pad_to_alignment,omitempty"`
}

// AggrEnable selects aggregation, deaggregation or bypass.
type AggrEnable int

const (
	AggrBypass AggrEnable = iota
	AggrEnabled
	AggrDeaggr
)

// AggrType is the aggregation protocol.
type AggrType int

const (
	AggrMBIM16 AggrType = iota
	AggrHDLC
	AggrTLP
	AggrRNDIS
	AggrGeneric
	AggrQCMAP
	AggrCoalesce
)

// AggrConfig configures frame aggregation. TimeLimitUs is quantized
// at configure time.
type AggrConfig struct {
	Enable              AggrEnable `json:"enable"`
	Type                AggrType   `json:"type"`
	ByteLimit           uint32     `json:"byte_limit,omitempty"`
	TimeLimitUs         uint32     `json:"time_limit_us,omitempty"`
	PktLimit            uint32     `json:"pkt_limit,omitempty"`
	HardByteLimitEnable bool       `json:"hard_byte_limit_enable,omitempty"`
	SwEOFActive         bool       `json:"sw_eof_active,omitempty"`
}

// CsOffload selects checksum offload.
type CsOffload int

const (
	CsOffloadDisable CsOffload = iota
	CsOffloadUL
	CsOffloadDL
)

// CfgConfig holds the per-pipe general configuration. The bus master
// selection is not caller controlled; it comes from the endpoint
// table.
type CfgConfig struct {
	Frag                bool      `json:"frag,omitempty"`
	CsOffload           CsOffload `json:"cs_offload,omitempty"`
	CsMetadataHdrOffset uint32    `json:"cs_metadata_hdr_offset,omitempty"`
}

// ULSOConfig configures UL segmentation offload (5.0 and later).
type ULSOConfig struct {
	IPIDMin uint16 `json:"ipid_min"`
	IPIDMax uint16 `json:"ipid_max"`
	IsULSO  bool   `json:"is_ulso"`
}

// NATMode selects the NAT direction for a producer.
type NATMode int

const (
	NATBypass NATMode = iota
	NATSrc
	NATDst
)

// NATConfig configures NAT for a producer.
type NATConfig struct {
	Mode NATMode `json:"mode"`
}

// ConnTrackConfig configures connection tracking (4.0 and later).
type ConnTrackConfig struct {
	Enable bool `json:"enable"`
}

// PipeMode is the producer forwarding mode.
type PipeMode int

const (
	ModeBasic PipeMode = iota
	ModeEnableFramingHDLC
	ModeDisableDeaggr
	ModeDMA
)

// String returns the mode name.
func (m PipeMode) String() string {
	switch m {
	case ModeEnableFramingHDLC:
		return "hdlc"
	case ModeDisableDeaggr:
		return "no-deaggr"
	case ModeDMA:
		return "dma"
	default:
		return "basic"
	}
}

// ModeConfig selects the producer mode. Dst names the consumer for
// DMA mode.
type ModeConfig struct {
	Mode PipeMode `json:"mode"`
	Dst  Client   `json:"dst"`
}

// SeqConfig overrides the sequencer from the endpoint table.
type SeqConfig struct {
	SetDynamic bool    `json:"set_dynamic"`
	Type       SeqType `json:"type"`
}

// RouteConfig selects the default routing table of a producer.
type RouteConfig struct {
	TableIndex uint32 `json:"table_index"`
}

// DeaggrConfig configures deaggregation of a producer.
type DeaggrConfig struct {
	HdrLen               uint32 `json:"hdr_len,omitempty"`
	SyspipeErrDetection  bool   `json:"syspipe_err_detection,omitempty"`
	PacketOffsetValid    bool   `json:"packet_offset_valid,omitempty"`
	PacketOffsetLocation uint32 `json:"packet_offset_location,omitempty"`
	IgnoreMinPktErr      bool   `json:"ignore_min_pkt_err,omitempty"`
	MaxPacketLen         uint32 `json:"max_packet_len,omitempty"`
}

// MetadataMaskConfig masks header metadata of a consumer.
type MetadataMaskConfig struct {
	Mask uint32 `json:"mask"`
}

// HOLBConfig configures head-of-line blocking drop for a consumer.
// TimerUs is quantized before any register is written.
type HOLBConfig struct {
	Enable  bool   `json:"enable"`
	TimerUs uint32 `json:"timer_us"`
}

// EndpointConfig groups every configurable facet of an endpoint. A
// nil facet is left untouched.
type EndpointConfig struct {
	Hdr          *HdrConfig          `json:"hdr,omitempty"`
	HdrExt       *HdrExtConfig       `json:"hdr_ext,omitempty"`
	Aggr         *AggrConfig         `json:"aggr,omitempty"`
	Cfg          *CfgConfig          `json:"cfg,omitempty"`
	ULSO         *ULSOConfig         `json:"ulso,omitempty"`
	NAT          *NATConfig          `json:"nat,omitempty"`
	ConnTrack    *ConnTrackConfig    `json:"conn_track,omitempty"`
	Mode         *ModeConfig         `json:"mode,omitempty"`
	Seq          *SeqConfig          `json:"seq,omitempty"`
	Route        *RouteConfig        `json:"route,omitempty"`
	Deaggr       *DeaggrConfig       `json:"deaggr,omitempty"`
	MetadataMask *MetadataMaskConfig `json:"metadata_mask,omitempty"`
	HOLB         *HOLBConfig         `json:"holb,omitempty"`
}

// Merge returns c with every non-nil facet of o applied on top.
func (c EndpointConfig) Merge(o EndpointConfig) EndpointConfig {
	if o.Hdr != nil {
		c.Hdr = o.Hdr
	}
	if o.HdrExt != nil {
		c.HdrExt = o.HdrExt
	}
	if o.Aggr != nil {
		c.Aggr = o.Aggr
	}
	if o.Cfg != nil {
		c.Cfg = o.Cfg
	}
	if o.ULSO != nil {
		c.ULSO = o.ULSO
	}
	if o.NAT != nil {
		c.NAT = o.NAT
	}
	if o.ConnTrack != nil {
		c.ConnTrack = o.ConnTrack
	}
	if o.Mode != nil {
		c.Mode = o.Mode
	}
	if o.Seq != nil {
		c.Seq = o.Seq
	}
	if o.Route != nil {
		c.Route = o.Route
	}
	if o.Deaggr != nil {
		c.Deaggr = o.Deaggr
	}
	if o.MetadataMask != nil {
		c.MetadataMask = o.MetadataMask
	}
	if o.HOLB != nil {
		c.HOLB = o.HOLB
	}
	return c
}

// EndpointState is the lifecycle state of an endpoint.
type EndpointState int

const (
	StateUnconfigured EndpointState = iota
	StateConfiguring
	StateActive
	StateSuspending
	StateSuspended
	StateResuming
	StateStopping
	StateStopped
)

// String returns the state name.
func (s EndpointState) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfiguring:
		return "configuring"
	case StateActive:
		return "active"
	case StateSuspending:
		return "suspending"
	case StateSuspended:
		return "suspended"
	case StateResuming:
		return "resuming"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("EndpointState(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s EndpointState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseEndpointState parses a state name as produced by String.
func ParseEndpointState(s string) (EndpointState, error) {
	for st := StateUnconfigured; st <= StateStopped; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return StateUnconfigured, fmt.Errorf("unknown endpoint state %q", s)
}

// EndpointStatus is a read-only snapshot of an allocated endpoint.
type EndpointStatus struct {
	Handle    int            `json:"handle"`
	Client    Client         `json:"client"`
	Pipe      int            `json:"pipe"`
	Channel   int            `json:"channel"`
	State     EndpointState  `json:"state"`
	Suspended bool           `json:"suspended"`
	KeepAwake bool           `json:"keep_awake"`
	Session   string         `json:"session"`
	Config    EndpointConfig `json:"config"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EndpointState) UnmarshalText(b []byte) error {
	v, err := ParseEndpointState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
