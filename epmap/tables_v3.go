package epmap

import "github.com/frobware/go-ipa"

var rev3_0 = withAliases(withAliases(row{
	ipa.MHIProd:            ep(ipa.Group30UL, flt, seq2nd, pcie, 0, 0, 16, 32),
	ipa.USBProd:            ep(ipa.Group30UL, flt, seq2nd, ddr, 1, 3, 16, 32),
	ipa.WLAN1Prod:          ep(ipa.Group30UL, flt, seq2nd, ddr, 6, 1, 8, 16).on(ipa.EEUC),
	ipa.MemcpyDMASyncProd:  ep(ipa.Group30DMA, noFlt, seqDMA, pcie, 7, 8, 8, 16),
	ipa.MemcpyDMAAsyncProd: ep(ipa.Group30DMA, noFlt, seqDMA, pcie, 8, 10, 8, 16),
	ipa.ODUProd:            ep(ipa.Group30UL, flt, seq2nd, ddr, 12, 9, 8, 16),
	ipa.AppsWANProd:        ep(ipa.Group30UL, flt, seq2nd, ddr, 14, 11, 8, 16),
	ipa.AppsCmdProd:        ep(ipa.Group30ImmCmd, noFlt, seqDMA, ddr, 22, 6, 18, 28),
	ipa.Q6CmdProd:          ep(ipa.Group30ImmCmd, noFlt, seqPkt, ddr, 3, 0, 8, 16).on(ipa.EEQ6),
	ipa.Q6LANProd:          ep(ipa.Group30UL, flt, seqPkt, ddr, 9, 4, 8, 16).on(ipa.EEQ6),

	ipa.Q6WANCons:          ep(ipa.Group30DL, noFlt, noSeq, ddr, 4, 3, 8, 12).on(ipa.EEQ6),
	ipa.Q6LANCons:          ep(ipa.Group30DL, noFlt, noSeq, ddr, 5, 2, 8, 12).on(ipa.EEQ6),
	ipa.AppsLANCons:        ep(ipa.Group30DL, noFlt, noSeq, ddr, 10, 4, 8, 12),
	ipa.AppsWANCons:        ep(ipa.Group30DL, noFlt, noSeq, ddr, 11, 5, 8, 12),
	ipa.ODUEmbCons:         ep(ipa.Group30DL, noFlt, noSeq, ddr, 13, 7, 8, 12),
	ipa.USBCons:            ep(ipa.Group30DL, noFlt, noSeq, ddr, 15, 1, 8, 12),
	ipa.WLAN1Cons:          ep(ipa.Group30DL, noFlt, noSeq, ddr, 16, 2, 8, 12).on(ipa.EEUC),
	ipa.USBDPLCons:         ep(ipa.Group30DPL, noFlt, noSeq, ddr, 17, 2, 8, 12),
	ipa.MHICons:            ep(ipa.Group30DL, noFlt, noSeq, pcie, 18, 12, 8, 12),
	ipa.MemcpyDMASyncCons:  ep(ipa.Group30DMA, noFlt, noSeq, pcie, 19, 13, 8, 12),
	ipa.MemcpyDMAAsyncCons: ep(ipa.Group30DMA, noFlt, noSeq, pcie, 20, 14, 8, 12),
	ipa.WLAN2Cons:          ep(ipa.Group30DL, noFlt, noSeq, ddr, 21, 3, 8, 12).on(ipa.EEUC),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.ODUProd,
	ipa.Test2Cons: ipa.ODUEmbCons,
})

var rev3_5 = withAliases(withAliases(row{
	ipa.USBProd:     ep(ipa.Group35ULDL, flt, seq2nd, ddr, 0, 7, 8, 16),
	ipa.ODUProd:     ep(ipa.Group35ULDL, flt, seq2nd, ddr, 1, 0, 8, 16),
	ipa.AppsWANProd: ep(ipa.Group35ULDL, flt, seq2nd, ddr, 2, 3, 8, 16),
	ipa.AppsCmdProd: ep(ipa.Group35ULDL, noFlt, seqDMA, ddr, 5, 4, 20, 23),
	ipa.WLAN1Prod:   ep(ipa.Group35ULDL, flt, seq2nd, ddr, 7, 1, 8, 16).on(ipa.EEUC),
	ipa.AppsLANProd: ep(ipa.Group35ULDL, flt, seqPkt, ddr, 8, 9, 8, 16),
	ipa.Q6LANProd:   ep(ipa.Group35ULDL, flt, seqPkt, ddr, 3, 0, 16, 32).on(ipa.EEQ6),
	ipa.Q6CmdProd:   ep(ipa.Group35ULDL, noFlt, seqPkt, ddr, 4, 1, 20, 23).on(ipa.EEQ6),
	ipa.Q6WANProd:   ep(ipa.Group35ULDL, flt, seqPkt, ddr, 6, 4, 12, 30).on(ipa.EEQ6),

	ipa.AppsLANCons: ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 9, 5, 8, 12),
	ipa.AppsWANCons: ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 10, 6, 8, 12),
	ipa.USBDPLCons:  ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 11, 2, 4, 6),
	ipa.ODUEmbCons:  ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 12, 1, 8, 12),
	ipa.Q6LANCons:   ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 13, 3, 8, 12).on(ipa.EEQ6),
	ipa.Q6WANCons:   ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 14, 2, 8, 12).on(ipa.EEQ6),
	ipa.WLAN1Cons:   ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 16, 3, 8, 8).on(ipa.EEUC),
	ipa.USBCons:     ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 17, 8, 8, 8),
	ipa.WLAN2Cons:   ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 18, 5, 8, 8).on(ipa.EEUC),
	ipa.WLAN3Cons:   ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 19, 7, 8, 8).on(ipa.EEUC),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.ODUProd,
	ipa.Test2Cons: ipa.ODUEmbCons,
})

// 3.5 MHI trades the WLAN and ODU pipes for PCIe and memcpy DMA.
var rev3_5MHI = withAliases(derive(rev3_5, []ipa.Client{
	ipa.WLAN1Prod, ipa.WLAN1Cons, ipa.WLAN2Cons, ipa.WLAN3Cons,
	ipa.ODUProd, ipa.ODUEmbCons,
	ipa.Test2Prod, ipa.Test2Cons,
}, row{
	ipa.MHIProd:            ep(ipa.Group35PCIE, flt, seq2nd, pcie, 1, 0, 8, 16),
	ipa.MHICons:            ep(ipa.Group35PCIE, noFlt, noSeq, pcie, 12, 1, 8, 12),
	ipa.MemcpyDMASyncProd:  ep(ipa.Group35MHIDMA, noFlt, seqDMA, pcie, 7, 10, 8, 16),
	ipa.MemcpyDMASyncCons:  ep(ipa.Group35MHIDMA, noFlt, noSeq, pcie, 16, 11, 8, 8),
	ipa.MemcpyDMAAsyncProd: ep(ipa.Group35MHIDMA, noFlt, seqDMA, pcie, 15, 12, 8, 16),
	ipa.MemcpyDMAAsyncCons: ep(ipa.Group35MHIDMA, noFlt, noSeq, pcie, 18, 13, 8, 8),
}), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.MHIProd,
	ipa.Test2Cons: ipa.MHICons,
})

var rev3_5_1 = withAliases(derive(rev3_5, []ipa.Client{
	ipa.ODUProd, ipa.ODUEmbCons,
	ipa.Test2Prod, ipa.Test2Cons,
}, row{
	ipa.Q6LTEWifiAggrCons: ep(ipa.Group35ULDL, noFlt, noSeq, ddr, 15, 5, 8, 12).on(ipa.EEQ6),
}), usbTestAliases)
