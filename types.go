package ipa

import "fmt"

// ResourceGroup is a revision-family specific index into the
// hardware resource groups. The same number means different things
// on different families; see the Group* constants.
type ResourceGroup int

// IPA 3.0 resource groups.
const (
	Group30UL     ResourceGroup = 0
	Group30DL     ResourceGroup = 1
	Group30DIAG   ResourceGroup = 2
	Group30DMA    ResourceGroup = 3
	Group30Q6ZIP  ResourceGroup = 4
	Group30UCRXQ  ResourceGroup = 5
	Group30DPL                  = Group30DL
	Group30ImmCmd               = Group30UL
)

// IPA 3.5 resource groups.
const (
	Group35LWADL  ResourceGroup = 0
	Group35ULDL   ResourceGroup = 1
	Group35MHIDMA ResourceGroup = 2
	Group35UCRXQ  ResourceGroup = 3
	Group35PCIE                 = Group35LWADL
	Group35DDR                  = Group35ULDL
)

// IPA 4.0 and 4.1 resource groups.
const (
	Group40LWADL    ResourceGroup = 0
	Group40ULDL     ResourceGroup = 1
	Group40MHIDMA   ResourceGroup = 2
	Group40UCRXQ    ResourceGroup = 3
	Group40Ethernet               = Group40LWADL
	Group40PCIE                   = Group40LWADL
	Group40DDR                    = Group40ULDL
)

// IPA 4.5 resource groups.
const (
	Group45PCIE  ResourceGroup = 0
	Group45ULDL  ResourceGroup = 1
	Group45DMA   ResourceGroup = 2
	Group45QDSS  ResourceGroup = 3
	Group45UCRXQ ResourceGroup = 4
	Group45DDR                 = Group45ULDL
)

// IPA 4.2, 4.7 and 4.11 have a single shared group.
const GroupLiteULDL ResourceGroup = 0

// IPA 4.9 resource groups.
const (
	Group49ULDL  ResourceGroup = 0
	Group49DMA   ResourceGroup = 1
	Group49UCRX  ResourceGroup = 2
	Group49DRBIP ResourceGroup = 3
)

// IPA 5.0, 5.1 and 5.5 resource groups.
const (
	Group50UL    ResourceGroup = 0
	Group50DL    ResourceGroup = 1
	Group50DMA   ResourceGroup = 2
	Group50QDSS  ResourceGroup = 3
	Group50URLLC ResourceGroup = 4
	Group50UC    ResourceGroup = 5
	Group50DRBIP ResourceGroup = 6
)

// IPA 5.2 resource groups.
const (
	Group52ULDL ResourceGroup = 0
	Group52DMA  ResourceGroup = 1
	Group52UC   ResourceGroup = 2
)

// SeqType is the DPS/HPS sequencer program selected for a producer.
// The values are symbolic; the register encoding belongs to the HAL.
type SeqType uint32

const (
	SeqDMAOnly                   SeqType = 0x0000
	SeqPktProcessNoDecNoUCP      SeqType = 0x0001
	SeqPktProcessNoDecUCP        SeqType = 0x0002
	SeqPktProcessDecUCP          SeqType = 0x0003
	Seq2ndPktProcessPassNoDecUCP SeqType = 0x0004
	Seq2ndPktProcessPassDecUCP   SeqType = 0x0006
	SeqPktProcessNoDecNoUCPDMAP  SeqType = 0x0009
	SeqDMADec                    SeqType = 0x0011
	SeqDMACompDecomp             SeqType = 0x0020
	SeqInvalid                   SeqType = 0xFFFFFFFF
)

var seqNames = map[SeqType]string{
	SeqDMAOnly:                   "DMA_ONLY",
	SeqPktProcessNoDecNoUCP:      "PKT_PROCESS_NO_DEC_NO_UCP",
	SeqPktProcessNoDecUCP:        "PKT_PROCESS_NO_DEC_UCP",
	SeqPktProcessDecUCP:          "PKT_PROCESS_DEC_UCP",
	Seq2ndPktProcessPassNoDecUCP: "2ND_PKT_PROCESS_PASS_NO_DEC_UCP",
	Seq2ndPktProcessPassDecUCP:   "2ND_PKT_PROCESS_PASS_DEC_UCP",
	SeqPktProcessNoDecNoUCPDMAP:  "PKT_PROCESS_NO_DEC_NO_UCP_DMAP",
	SeqDMADec:                    "DMA_DEC",
	SeqDMACompDecomp:             "DMA_COMP_DECOMP",
	SeqInvalid:                   "INVALID",
}

// String returns the sequencer name.
func (s SeqType) String() string {
	if name, ok := seqNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SeqType(%#x)", uint32(s))
}

// IsDMA reports whether the sequencer only moves data without packet
// processing.
func (s SeqType) IsDMA() bool {
	switch s {
	case SeqDMAOnly, SeqDMADec, SeqDMACompDecomp:
		return true
	}
	return false
}

// BusMaster selects the memory interface the endpoint masters.
type BusMaster int

const (
	BusDDR  BusMaster = 0
	BusPCIe BusMaster = 1
)

// String returns "ddr" or "pcie".
func (b BusMaster) String() string {
	if b == BusPCIe {
		return "pcie"
	}
	return "ddr"
}

// EE is the execution environment that owns a GSI channel.
type EE int

const (
	EEAP EE = 0
	EEQ6 EE = 1
	EEUC EE = 3
)

// String returns the execution environment name.
func (e EE) String() string {
	switch e {
	case EEAP:
		return "ap"
	case EEQ6:
		return "q6"
	case EEUC:
		return "uc"
	default:
		return fmt.Sprintf("EE(%d)", int(e))
	}
}

// PrefetchMode is the GSI prefetch mode of an endpoint.
type PrefetchMode int

const (
	PrefetchBufs PrefetchMode = iota
	PrefetchEscapeBufs
	PrefetchSmart
	PrefetchFreeSmart
)

// String returns the prefetch mode name.
func (p PrefetchMode) String() string {
	switch p {
	case PrefetchEscapeBufs:
		return "escape"
	case PrefetchSmart:
		return "smart"
	case PrefetchFreeSmart:
		return "free-smart"
	default:
		return "bufs"
	}
}

// TxInstance selects the uplink or downlink TX instance on 5.x
// hardware.
type TxInstance uint8

const (
	TxUL TxInstance = 0
	TxDL TxInstance = 1
	TxNA TxInstance = 0xFF
)

// String returns "ul", "dl" or "na".
func (t TxInstance) String() string {
	switch t {
	case TxUL:
		return "ul"
	case TxDL:
		return "dl"
	default:
		return "na"
	}
}

// HWMode is the platform execution mode reported at attach.
type HWMode int

const (
	HWModeNormal HWMode = iota
	HWModeVirtual
	HWModeEmulation
)

// String returns the mode name.
func (m HWMode) String() string {
	switch m {
	case HWModeVirtual:
		return "virtual"
	case HWModeEmulation:
		return "emulation"
	default:
		return "normal"
	}
}

// ParseHWMode parses "normal", "virtual" or "emulation".
func ParseHWMode(s string) (HWMode, error) {
	switch s {
	case "", "normal":
		return HWModeNormal, nil
	case "virtual":
		return HWModeVirtual, nil
	case "emulation":
		return HWModeEmulation, nil
	default:
		return HWModeNormal, fmt.Errorf("unknown hardware mode %q", s)
	}
}

// ChannelMode is the completion mode of a GSI channel.
type ChannelMode int

const (
	ChannelCallback ChannelMode = iota
	ChannelPoll
)

// String returns "callback" or "poll".
func (m ChannelMode) String() string {
	if m == ChannelPoll {
		return "poll"
	}
	return "callback"
}
