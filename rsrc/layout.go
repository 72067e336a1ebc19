package rsrc

import (
	"github.com/frobware/go-ipa"
)

// RegPair routes two groups to one resource-group register. Y is -1
// when the register carries a single group.
type RegPair struct {
	Reg  ipa.Register
	X, Y int
}

// Layout describes how a revision family programs its resource
// groups. The position of a category in Src or Dst is the register
// index n it is written to.
type Layout struct {
	Src       []Category
	Dst       []Category
	SrcGroups int
	DstGroups int
	SrcRegs   []RegPair
	DstRegs   []RegPair
	// RxHpsGroups is the number of groups with an RX HPS command
	// queue depth.
	RxHpsGroups int
}

type family int

const (
	famV3_0 family = iota
	famV3_5
	famV4_0
	famLite
	famV4_5
	famV4_9
	famV5_0
	famV5_2
)

var revisionFamily = [ipa.RevisionMax]family{
	ipa.Rev3_0:          famV3_0,
	ipa.Rev3_5:          famV3_5,
	ipa.Rev3_5_MHI:      famV3_5,
	ipa.Rev3_5_1:        famV3_5,
	ipa.Rev4_0:          famV4_0,
	ipa.Rev4_0_MHI:      famV4_0,
	ipa.Rev4_1:          famV4_0,
	ipa.Rev4_1_APQ:      famV4_0,
	ipa.Rev4_2:          famLite,
	ipa.Rev4_5:          famV4_5,
	ipa.Rev4_5_MHI:      famV4_5,
	ipa.Rev4_5_APQ:      famV4_5,
	ipa.Rev4_5_AUTO:     famV4_5,
	ipa.Rev4_5_AUTO_MHI: famV4_5,
	ipa.Rev4_7:          famLite,
	ipa.Rev4_9:          famV4_9,
	ipa.Rev4_11:         famLite,
	ipa.Rev5_0:          famV5_0,
	ipa.Rev5_0_MHI:      famV5_0,
	ipa.Rev5_1:          famV5_0,
	ipa.Rev5_1_APQ:      famV5_0,
	ipa.Rev5_2:          famV5_2,
	ipa.Rev5_5:          famV5_0,
	ipa.Rev5_5_XR:       famV5_0,
}

var (
	srcV3_0 = []Category{
		SrcPktContexts, SrcHdrSectors, SrcHdri1Buffer, SrcDescriptorLists,
		SrcDescriptorBuff, SrcHdri2Buffers, SrcHpsDmars, SrcAckEntries,
	}
	dstV3_0 = []Category{DstDataSectors, DstDataSectorLists, DstDpsDmars}

	srcV3_5 = []Category{
		SrcPktContexts, SrcDescriptorLists, SrcDescriptorBuff,
		SrcHpsDmars, SrcAckEntries,
	}
	dstV3_5 = []Category{DstDataSectors, DstDpsDmars}

	dstV5_0 = []Category{DstDataSectors, DstDpsDmars, DstUlsoSegments}
)

// The group to register routing is per family. It is spelled out
// rather than derived from the group count because later families
// leave registers unused.
var layouts = map[family]Layout{
	famV3_0: {
		Src: srcV3_0, Dst: dstV3_0,
		SrcGroups: 6, DstGroups: 6,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, 3},
			{ipa.RegSrcRsrcGrp45, 4, 5},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, 3},
			{ipa.RegDstRsrcGrp45, 4, 5},
		},
		RxHpsGroups: 4,
	},
	famV3_5: {
		Src: srcV3_5, Dst: dstV3_5,
		SrcGroups: 4, DstGroups: 3,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, 3},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, -1},
		},
		RxHpsGroups: 4,
	},
	famV4_0: {
		Src: srcV3_5, Dst: dstV3_5,
		SrcGroups: 4, DstGroups: 3,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, 3},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, -1},
		},
		RxHpsGroups: 4,
	},
	famLite: {
		Src: srcV3_5, Dst: dstV3_5,
		SrcGroups: 1, DstGroups: 1,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, -1},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, -1},
		},
		RxHpsGroups: 1,
	},
	famV4_5: {
		Src: srcV3_5, Dst: dstV3_5,
		SrcGroups: 5, DstGroups: 5,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, 3},
			{ipa.RegSrcRsrcGrp45, 4, -1},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, 3},
			{ipa.RegDstRsrcGrp45, 4, -1},
		},
		RxHpsGroups: 5,
	},
	famV4_9: {
		Src: srcV3_5, Dst: dstV3_5,
		SrcGroups: 3, DstGroups: 4,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, -1},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, 3},
		},
		RxHpsGroups: 3,
	},
	famV5_0: {
		Src: srcV3_5, Dst: dstV5_0,
		SrcGroups: 6, DstGroups: 7,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, 3},
			{ipa.RegSrcRsrcGrp45, 4, 5},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, 3},
			{ipa.RegDstRsrcGrp45, 4, 5},
			{ipa.RegDstRsrcGrp67, 6, -1},
		},
		RxHpsGroups: 6,
	},
	famV5_2: {
		Src: srcV3_5, Dst: dstV5_0,
		SrcGroups: 3, DstGroups: 3,
		SrcRegs: []RegPair{
			{ipa.RegSrcRsrcGrp01, 0, 1},
			{ipa.RegSrcRsrcGrp23, 2, -1},
		},
		DstRegs: []RegPair{
			{ipa.RegDstRsrcGrp01, 0, 1},
			{ipa.RegDstRsrcGrp23, 2, -1},
		},
		RxHpsGroups: 3,
	},
}

// LayoutFor returns the layout of rev.
func LayoutFor(rev ipa.Revision) (Layout, bool) {
	if !rev.Valid() {
		return Layout{}, false
	}
	l, ok := layouts[revisionFamily[rev]]
	return l, ok
}

// Groups returns the number of groups the category is reserved for,
// or 0 when the layout does not program it.
func (l Layout) Groups(c Category) int {
	if c == RxHpsCmdq {
		return l.RxHpsGroups
	}
	for _, s := range l.Src {
		if s == c {
			return l.SrcGroups
		}
	}
	for _, d := range l.Dst {
		if d == c {
			return l.DstGroups
		}
	}
	return 0
}

// Categories returns every category the layout carries limits for,
// source first.
func (l Layout) Categories() []Category {
	out := make([]Category, 0, len(l.Src)+len(l.Dst)+1)
	out = append(out, l.Src...)
	out = append(out, l.Dst...)
	if l.RxHpsGroups > 0 {
		out = append(out, RxHpsCmdq)
	}
	return out
}
