package epmap

import "github.com/frobware/go-ipa"

var rev4_5 = withAliases(withAliases(row{
	ipa.USBProd:         ep(ipa.Group45ULDL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:     ep(ipa.Group45ULDL, flt, seq2nd, ddr, 2, 11, 16, 32).prefetch(ipa.PrefetchSmart, 7),
	ipa.WLAN1Prod:       ep(ipa.Group45ULDL, flt, seq2nd, ddr, 3, 5, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsCmdProd:     ep(ipa.Group45ULDL, noFlt, seqDMA, ddr, 7, 12, 20, 24),
	ipa.AppsLANProd:     ep(ipa.Group45ULDL, flt, seqPkt, ddr, 9, 14, 8, 16),
	ipa.WIGIGProd:       ep(ipa.Group45ULDL, flt, seq2nd, ddr, 10, 2, 8, 16),
	ipa.EthernetProd:    ep(ipa.Group45ULDL, flt, seq2nd, ddr, 12, 1, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.Q6WANProd:       ep(ipa.Group45ULDL, flt, seqPkt, ddr, 5, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:       ep(ipa.Group45ULDL, noFlt, seqPkt, ddr, 6, 4, 20, 24).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd: ep(ipa.Group45ULDL, flt, seqPkt, ddr, 8, 2, 16, 28).on(ipa.EEQ6),

	ipa.Q6QBAPStatusCons: ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 13, 6, 9, 9).on(ipa.EEQ6),
	ipa.Q6LANCons:        ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 14, 0, 9, 9).on(ipa.EEQ6),
	ipa.USBDPLCons:       ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 15, 3, 5, 5),
	ipa.AppsLANCons:      ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 16, 9, 9, 9),
	ipa.AppsWANCoalCons:  ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 17, 13, 9, 9),
	ipa.AppsWANCons:      ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 18, 15, 9, 9),
	ipa.USBCons:          ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 19, 6, 9, 9),
	ipa.Q6ULNLODataCons:  ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 20, 1, 5, 5).on(ipa.EEQ6),
	ipa.Q6ULNLOAckCons:   ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 21, 5, 5, 5).on(ipa.EEQ6),
	ipa.ODLDPLCons:       ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 22, 10, 5, 5),
	ipa.WLAN1Cons:        ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 23, 16, 9, 9),
	ipa.WLAN2Cons:        ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 24, 8, 9, 9),
	ipa.EthernetCons:     ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 25, 17, 9, 9),
	ipa.WIGIG1Cons:       ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 26, 18, 9, 9),
	ipa.WIGIG2Cons:       ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 27, 19, 9, 9),
	ipa.DummyCons:        ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.EthernetProd,
	ipa.Test2Cons: ipa.EthernetCons,
	ipa.Test3Prod: ipa.WIGIGProd,
	ipa.Test3Cons: ipa.WIGIG1Cons,
})

var rev4_5MHI = withAliases(derive(rev4_5, []ipa.Client{
	ipa.WLAN1Prod, ipa.WLAN1Cons, ipa.WLAN2Cons,
	ipa.WIGIGProd, ipa.WIGIG1Cons, ipa.WIGIG2Cons,
	ipa.EthernetProd, ipa.EthernetCons,
	ipa.Test2Prod, ipa.Test2Cons, ipa.Test3Prod, ipa.Test3Cons,
}, row{
	ipa.MHIProd:            ep(ipa.Group45PCIE, flt, seq2nd, pcie, 3, 5, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.MemcpyDMASyncProd:  ep(ipa.Group45DMA, noFlt, seqDMA, pcie, 10, 2, 8, 16),
	ipa.QDSSProd:           ep(ipa.Group45QDSS, noFlt, seqDMA, ddr, 11, 20, 8, 16),
	ipa.MemcpyDMAAsyncProd: ep(ipa.Group45DMA, noFlt, seqDMA, pcie, 12, 1, 8, 16),
	ipa.MHICons:            ep(ipa.Group45PCIE, noFlt, noSeq, pcie, 23, 16, 9, 9),
	ipa.MHIDPLCons:         ep(ipa.Group45PCIE, noFlt, noSeq, pcie, 24, 8, 5, 5),
	ipa.MHIQDSSCons:        ep(ipa.Group45QDSS, noFlt, noSeq, pcie, 25, 17, 9, 9),
	ipa.MemcpyDMASyncCons:  ep(ipa.Group45DMA, noFlt, noSeq, pcie, 26, 18, 9, 9),
	ipa.MemcpyDMAAsyncCons: ep(ipa.Group45DMA, noFlt, noSeq, pcie, 27, 19, 9, 9),
}), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.MHIProd,
	ipa.Test2Cons: ipa.MHICons,
})

var rev4_5APQ = derive(rev4_5, []ipa.Client{
	ipa.Q6WANProd, ipa.Q6CmdProd, ipa.Q6DLNLODataProd,
	ipa.Q6LANCons, ipa.Q6ULNLODataCons, ipa.Q6ULNLOAckCons, ipa.Q6QBAPStatusCons,
	ipa.AppsWANProd, ipa.AppsWANCons, ipa.AppsWANCoalCons, ipa.ODLDPLCons,
}, nil)

// Automotive parts add the AQC and RTK Ethernet controllers; the QBAP
// status pipe is given up for the RTK consumer.
var rev4_5AUTO = derive(rev4_5, []ipa.Client{
	ipa.Q6QBAPStatusCons,
}, row{
	ipa.AQCEthernetProd: ep(ipa.Group45ULDL, flt, seq2nd, ddr, 11, 20, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AQCEthernetCons: ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 0, 21, 9, 9),
	ipa.RTKEthernetProd: ep(ipa.Group45ULDL, flt, seq2nd, ddr, 4, 22, 8, 16),
	ipa.RTKEthernetCons: ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 13, 23, 9, 9),
})

var rev4_5AUTOMHI = derive(rev4_5MHI, nil, row{
	ipa.AQCEthernetProd: ep(ipa.Group45ULDL, flt, seq2nd, ddr, 4, 21, 8, 16),
	ipa.AQCEthernetCons: ep(ipa.Group45ULDL, noFlt, noSeq, ddr, 0, 22, 9, 9),
})

var rev4_7 = withAliases(row{
	ipa.USBProd:         ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:     ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 2, 11, 16, 32),
	ipa.WLAN1Prod:       ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 3, 7, 8, 16),
	ipa.AppsLANProd:     ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 4, 1, 8, 16),
	ipa.AppsCmdProd:     ep(ipa.GroupLiteULDL, noFlt, seqDMA, ddr, 7, 12, 20, 24),
	ipa.Q6WANProd:       ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 5, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:       ep(ipa.GroupLiteULDL, noFlt, seqPkt, ddr, 6, 4, 20, 24).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd: ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 8, 2, 16, 28).on(ipa.EEQ6),

	ipa.AppsLANCons:      ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 9, 2, 9, 9),
	ipa.AppsWANCoalCons:  ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 10, 13, 9, 9),
	ipa.AppsWANCons:      ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 11, 14, 9, 9),
	ipa.USBCons:          ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 12, 6, 9, 9),
	ipa.USBDPLCons:       ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 13, 3, 5, 5),
	ipa.ODLDPLCons:       ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 14, 10, 5, 5),
	ipa.WLAN1Cons:        ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 15, 8, 9, 9),
	ipa.WLAN2Cons:        ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 16, 9, 9, 9),
	ipa.Q6LANCons:        ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 17, 0, 9, 9).on(ipa.EEQ6),
	ipa.Q6ULNLODataCons:  ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 18, 1, 5, 5).on(ipa.EEQ6),
	ipa.Q6ULNLOAckCons:   ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 19, 5, 5, 5).on(ipa.EEQ6),
	ipa.Q6QBAPStatusCons: ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 20, 6, 9, 9).on(ipa.EEQ6),
	ipa.DummyCons:        ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases)

var rev4_9 = withAliases(withAliases(row{
	ipa.USBProd:            ep(ipa.Group49ULDL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:        ep(ipa.Group49ULDL, flt, seq2nd, ddr, 2, 11, 16, 32).prefetch(ipa.PrefetchSmart, 7),
	ipa.WLAN1Prod:          ep(ipa.Group49ULDL, flt, seq2nd, ddr, 3, 5, 8, 16),
	ipa.MemcpyDMASyncProd:  ep(ipa.Group49DMA, noFlt, seqDMA, ddr, 4, 16, 8, 16),
	ipa.AppsCmdProd:        ep(ipa.Group49ULDL, noFlt, seqDMA, ddr, 7, 12, 20, 24),
	ipa.AppsLANProd:        ep(ipa.Group49ULDL, flt, seqPkt, ddr, 9, 14, 8, 16),
	ipa.WIGIGProd:          ep(ipa.Group49ULDL, flt, seq2nd, ddr, 10, 2, 8, 16),
	ipa.MemcpyDMAAsyncProd: ep(ipa.Group49DMA, noFlt, seqDMA, ddr, 11, 17, 8, 16),
	ipa.EthernetProd:       ep(ipa.Group49ULDL, flt, seq2nd, ddr, 12, 1, 8, 16),
	ipa.Q6WANProd:          ep(ipa.Group49ULDL, flt, seqPkt, ddr, 5, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:          ep(ipa.Group49ULDL, noFlt, seqPkt, ddr, 6, 4, 20, 24).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd:    ep(ipa.Group49ULDL, flt, seqPkt, ddr, 8, 2, 16, 28).on(ipa.EEQ6),

	ipa.Q6ULNLODataCons:    ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 0, 1, 5, 5).on(ipa.EEQ6),
	ipa.AppsLANCons:        ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 13, 9, 9, 9),
	ipa.AppsWANCoalCons:    ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 14, 13, 9, 9),
	ipa.AppsWANCons:        ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 15, 15, 9, 9),
	ipa.USBCons:            ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 16, 6, 9, 9),
	ipa.USBDPLCons:         ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 17, 3, 5, 5),
	ipa.ODLDPLCons:         ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 18, 10, 5, 5),
	ipa.WLAN2Cons:          ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 19, 8, 9, 9),
	ipa.EthernetCons:       ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 20, 18, 9, 9),
	ipa.WIGIG1Cons:         ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 21, 19, 9, 9),
	ipa.MemcpyDMASyncCons:  ep(ipa.Group49DMA, noFlt, noSeq, ddr, 22, 20, 9, 9),
	ipa.MemcpyDMAAsyncCons: ep(ipa.Group49DMA, noFlt, noSeq, ddr, 23, 21, 9, 9),
	ipa.Q6LANCons:          ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 24, 0, 9, 9).on(ipa.EEQ6),
	ipa.DummyCons:          ep(ipa.Group49ULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.EthernetProd,
	ipa.Test2Cons: ipa.EthernetCons,
})

var rev4_11 = withAliases(row{
	ipa.Q6DLNLODataProd: ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 0, 2, 16, 28).on(ipa.EEQ6),
	ipa.USBProd:         ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:     ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 2, 11, 16, 32),
	ipa.WLAN1Prod:       ep(ipa.GroupLiteULDL, flt, seq2nd, ddr, 3, 5, 8, 16),
	ipa.AppsCmdProd:     ep(ipa.GroupLiteULDL, noFlt, seqDMA, ddr, 4, 12, 20, 24),
	ipa.Q6WANProd:       ep(ipa.GroupLiteULDL, flt, seqPkt, ddr, 6, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:       ep(ipa.GroupLiteULDL, noFlt, seqPkt, ddr, 7, 4, 20, 24).on(ipa.EEQ6),

	ipa.AppsLANCons:     ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 8, 9, 9, 9),
	ipa.AppsWANCoalCons: ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 9, 13, 9, 9),
	ipa.AppsWANCons:     ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 10, 15, 9, 9),
	ipa.USBCons:         ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 11, 6, 9, 9),
	ipa.USBDPLCons:      ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 12, 3, 5, 5),
	ipa.WLAN2Cons:       ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 13, 8, 9, 9),
	ipa.Q6LANCons:       ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 14, 0, 9, 9).on(ipa.EEQ6),
	ipa.Q6ULNLODataCons: ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 15, 1, 5, 5).on(ipa.EEQ6),
	ipa.DummyCons:       ep(ipa.GroupLiteULDL, noFlt, noSeq, ddr, 31, 31, 8, 8),
}, usbTestAliases)
