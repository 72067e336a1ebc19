package epmap

import "github.com/frobware/go-ipa"

var rev4_0 = withAliases(withAliases(row{
	ipa.USBProd:      ep(ipa.Group40ULDL, flt, seq2nd, ddr, 0, 8, 8, 16),
	ipa.ODUProd:      ep(ipa.Group40ULDL, flt, seq2nd, ddr, 1, 0, 8, 16),
	ipa.AppsWANProd:  ep(ipa.Group40ULDL, flt, seq2nd, ddr, 2, 3, 16, 32),
	ipa.AppsCmdProd:  ep(ipa.Group40ULDL, noFlt, seqDMA, ddr, 5, 4, 20, 24),
	ipa.WLAN1Prod:    ep(ipa.Group40ULDL, flt, seq2nd, ddr, 6, 2, 8, 16),
	ipa.AppsLANProd:  ep(ipa.Group40ULDL, flt, seqPkt, ddr, 8, 10, 8, 16),
	ipa.EthernetProd: ep(ipa.Group40Ethernet, flt, seq2nd, ddr, 9, 1, 8, 16),
	ipa.Q6LANProd:    ep(ipa.Group40ULDL, flt, seqPkt, ddr, 3, 0, 16, 32).on(ipa.EEQ6),
	ipa.Q6CmdProd:    ep(ipa.Group40ULDL, noFlt, seqPkt, ddr, 4, 1, 20, 24).on(ipa.EEQ6),
	ipa.Q6WANProd:    ep(ipa.Group40ULDL, flt, seqPkt, ddr, 7, 4, 12, 30).on(ipa.EEQ6),

	ipa.AppsLANCons:       ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 10, 5, 9, 9),
	ipa.AppsWANCons:       ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 11, 6, 9, 9),
	ipa.USBDPLCons:        ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 12, 7, 5, 5),
	ipa.ODUEmbCons:        ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 13, 9, 9, 9),
	ipa.USBCons:           ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 14, 11, 9, 9),
	ipa.WLAN1Cons:         ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 15, 12, 8, 8),
	ipa.WLAN2Cons:         ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 16, 13, 8, 8),
	ipa.EthernetCons:      ep(ipa.Group40Ethernet, noFlt, noSeq, ddr, 17, 14, 9, 9),
	ipa.Q6LANCons:         ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 18, 3, 9, 9).on(ipa.EEQ6),
	ipa.Q6WANCons:         ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 19, 2, 9, 9).on(ipa.EEQ6),
	ipa.Q6LTEWifiAggrCons: ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 20, 5, 9, 9).on(ipa.EEQ6),
	ipa.DummyCons:         ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.ODUProd,
	ipa.Test2Cons: ipa.ODUEmbCons,
	ipa.Test3Prod: ipa.EthernetProd,
	ipa.Test3Cons: ipa.EthernetCons,
})

// 4.0 MHI replaces the WLAN, ODU and Ethernet pipes with PCIe and
// memcpy DMA.
var rev4_0MHI = withAliases(derive(rev4_0, []ipa.Client{
	ipa.WLAN1Prod, ipa.WLAN1Cons, ipa.WLAN2Cons,
	ipa.ODUProd, ipa.ODUEmbCons,
	ipa.EthernetProd, ipa.EthernetCons,
	ipa.Test2Prod, ipa.Test2Cons, ipa.Test3Prod, ipa.Test3Cons,
}, row{
	ipa.MHIProd:            ep(ipa.Group40PCIE, flt, seq2nd, pcie, 1, 0, 8, 16),
	ipa.MHICons:            ep(ipa.Group40PCIE, noFlt, noSeq, pcie, 13, 9, 9, 9),
	ipa.MemcpyDMASyncProd:  ep(ipa.Group40MHIDMA, noFlt, seqDMA, pcie, 6, 2, 8, 16),
	ipa.MemcpyDMASyncCons:  ep(ipa.Group40MHIDMA, noFlt, noSeq, pcie, 15, 12, 9, 9),
	ipa.MemcpyDMAAsyncProd: ep(ipa.Group40MHIDMA, noFlt, seqDMA, pcie, 9, 1, 8, 16),
	ipa.MemcpyDMAAsyncCons: ep(ipa.Group40MHIDMA, noFlt, noSeq, pcie, 16, 13, 9, 9),
}), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.MHIProd,
	ipa.Test2Cons: ipa.MHICons,
})

// 4.1 adds the NLO data paths to the 4.0 layout.
var rev4_1 = derive(rev4_0, nil, row{
	ipa.Q6ULNLODataCons: ep(ipa.Group40ULDL, noFlt, noSeq, ddr, 21, 6, 9, 9).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd: ep(ipa.Group40ULDL, flt, seq2nd, ddr, 22, 7, 8, 16).on(ipa.EEQ6),
})

// APQ parts have no modem: every Q6 and WAN pipe is dropped.
var rev4_1APQ = derive(rev4_1, []ipa.Client{
	ipa.Q6LANProd, ipa.Q6CmdProd, ipa.Q6WANProd, ipa.Q6DLNLODataProd,
	ipa.Q6LANCons, ipa.Q6WANCons, ipa.Q6LTEWifiAggrCons, ipa.Q6ULNLODataCons,
	ipa.AppsWANProd, ipa.AppsWANCons,
}, nil)

var rev4_2 = withAliases(row{
	ipa.USBProd:     ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 1, 0, 8, 16),
	ipa.AppsWANProd: ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 2, 3, 8, 16),
	ipa.WLAN1Prod:   ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 3, 2, 8, 16),
	ipa.AppsLANProd: ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 4, 1, 8, 16),
	ipa.AppsCmdProd: ep(ipa.GroupLiteULDL, noFlt, seqDMA, ddr, 5, 4, 20, 24),
	ipa.Q6WANProd:   ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 0, 0, 8, 12).on(ipa.EEQ6),
	ipa.Q6CmdProd:   ep(ipa.GroupLiteULDL, noFlt, seqPkt, ddr, 6, 1, 8, 12).on(ipa.EEQ6),

	ipa.AppsLANCons: ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 7, 5, 8, 12),
	ipa.AppsWANCons: ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 8, 6, 8, 12),
	ipa.USBCons:     ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 9, 7, 8, 12),
	ipa.USBDPLCons:  ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 10, 8, 4, 6),
	ipa.WLAN1Cons:   ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 11, 9, 8, 12),
	ipa.Q6WANCons:   ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 12, 2, 8, 12).on(ipa.EEQ6),
	ipa.DummyCons:   ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases)
