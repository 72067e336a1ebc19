// Package rsrc holds the per-revision resource-group limit tables and
// turns them into resource-group register writes.
package rsrc

import "fmt"

// Category is a hardware resource type shared between resource
// groups.
type Category int

const (
	SrcPktContexts Category = iota
	SrcHdrSectors
	SrcHdri1Buffer
	SrcDescriptorLists
	SrcDescriptorBuff
	SrcHdri2Buffers
	SrcHpsDmars
	SrcAckEntries
	DstDataSectors
	DstDataSectorLists
	DstDpsDmars
	DstUlsoSegments
	RxHpsCmdq
	categoryMax
)

var categoryNames = [categoryMax]string{
	SrcPktContexts:     "src_pkt_contexts",
	SrcHdrSectors:      "src_hdr_sectors",
	SrcHdri1Buffer:     "src_hdri1_buffer",
	SrcDescriptorLists: "src_descriptor_lists",
	SrcDescriptorBuff:  "src_descriptor_buff",
	SrcHdri2Buffers:    "src_hdri2_buffers",
	SrcHpsDmars:        "src_hps_dmars",
	SrcAckEntries:      "src_ack_entries",
	DstDataSectors:     "dst_data_sectors",
	DstDataSectorLists: "dst_data_sector_lists",
	DstDpsDmars:        "dst_dps_dmars",
	DstUlsoSegments:    "dst_ulso_segments",
	RxHpsCmdq:          "rx_hps_cmdq",
}

// String returns the category name.
func (c Category) String() string {
	if c < 0 || c >= categoryMax {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Total returns the number of hardware slots of the category shared
// by every group.
func Total(c Category) uint32 {
	switch c {
	case SrcDescriptorBuff, DstDataSectors:
		return 128
	default:
		return 64
	}
}

// Limit is the reserved minimum and permitted maximum of one
// resource for one group.
type Limit struct {
	Min uint32 `json:"min"`
	Max uint32 `json:"max"`
}

func l(lo, hi uint32) Limit {
	return Limit{Min: lo, Max: hi}
}

// unlimited repeats the no-reservation limit for n groups.
func unlimited(n int) []Limit {
	out := make([]Limit, n)
	for i := range out {
		out[i] = l(0, 255)
	}
	return out
}
