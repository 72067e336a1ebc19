package epmap

import "github.com/frobware/go-ipa"

// On 5.x every consumer carries the TX instance matching its
// direction; producers are TxNA.
var rev5_0 = withAliases(withAliases(row{
	ipa.USBProd:               ep(ipa.Group50UL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:           ep(ipa.Group50UL, flt, seq2nd, ddr, 2, 11, 16, 32).prefetch(ipa.PrefetchSmart, 7),
	ipa.WLAN1Prod:             ep(ipa.Group50UL, flt, seq2nd, ddr, 3, 5, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsCmdProd:           ep(ipa.Group50UL, noFlt, seqDMA, ddr, 7, 12, 20, 24),
	ipa.AppsLANProd:           ep(ipa.Group50UL, flt, seqPkt, ddr, 9, 14, 8, 16),
	ipa.WIGIGProd:             ep(ipa.Group50UL, flt, seq2nd, ddr, 10, 2, 8, 16),
	ipa.EthernetProd:          ep(ipa.Group50UL, flt, seq2nd, ddr, 12, 1, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANLowLatProd:     ep(ipa.Group50URLLC, flt, seq2nd, ddr, 13, 16, 8, 16).prefetch(ipa.PrefetchFreeSmart, 3),
	ipa.AppsWANLowLatDataProd: ep(ipa.Group50URLLC, flt, seq2ndDec, ddr, 14, 17, 8, 16).prefetch(ipa.PrefetchFreeSmart, 3),
	ipa.Q6DLNLOLLDataProd:     ep(ipa.Group50URLLC, flt, seqPkt, ddr, 4, 5, 16, 28).on(ipa.EEQ6),
	ipa.Q6WANProd:             ep(ipa.Group50DL, flt, seqPkt, ddr, 5, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:             ep(ipa.Group50UL, noFlt, seqPkt, ddr, 6, 4, 20, 24).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd:       ep(ipa.Group50DL, flt, seqPkt, ddr, 8, 2, 16, 28).on(ipa.EEQ6),
	ipa.Q6DLNLODataXlatProd:   ep(ipa.Group50DL, flt, seqPktDec, ddr, 11, 6, 16, 28).on(ipa.EEQ6),

	ipa.USBDPLCons:            ep(ipa.Group50DL, noFlt, noSeq, ddr, 15, 3, 5, 5).tx(ipa.TxDL),
	ipa.AppsLANCons:           ep(ipa.Group50DL, noFlt, noSeq, ddr, 16, 9, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANCoalCons:       ep(ipa.Group50DL, noFlt, noSeq, ddr, 17, 13, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANCons:           ep(ipa.Group50DL, noFlt, noSeq, ddr, 18, 15, 9, 9).tx(ipa.TxDL),
	ipa.USBCons:               ep(ipa.Group50DL, noFlt, noSeq, ddr, 19, 6, 9, 9).tx(ipa.TxDL),
	ipa.Q6LANCons:             ep(ipa.Group50UL, noFlt, noSeq, ddr, 20, 0, 9, 9).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.Q6ULNLODataCons:       ep(ipa.Group50UL, noFlt, noSeq, ddr, 21, 1, 5, 5).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.ODLDPLCons:            ep(ipa.Group50DL, noFlt, noSeq, ddr, 22, 10, 5, 5).tx(ipa.TxDL),
	ipa.Q6ULNLOAckCons:        ep(ipa.Group50UL, noFlt, noSeq, ddr, 23, 7, 5, 5).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.WLAN2Cons:             ep(ipa.Group50DL, noFlt, noSeq, ddr, 24, 8, 9, 9).tx(ipa.TxDL),
	ipa.EthernetCons:          ep(ipa.Group50DL, noFlt, noSeq, ddr, 25, 18, 9, 9).tx(ipa.TxDL),
	ipa.WIGIG1Cons:            ep(ipa.Group50DL, noFlt, noSeq, ddr, 26, 19, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANLowLatCons:     ep(ipa.Group50URLLC, noFlt, noSeq, ddr, 27, 20, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANLowLatDataCons: ep(ipa.Group50URLLC, noFlt, noSeq, ddr, 28, 21, 9, 9).tx(ipa.TxDL),
	ipa.Q6QBAPStatusCons:      ep(ipa.Group50UL, noFlt, noSeq, ddr, 29, 8, 9, 9).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.DummyCons:             ep(ipa.Group50DL, noFlt, noSeq, ddr, 31, 31, 8, 8).tx(ipa.TxDL),
}, usbTestAliases), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.EthernetProd,
	ipa.Test2Cons: ipa.EthernetCons,
})

var rev5_0MHI = withAliases(derive(rev5_0, []ipa.Client{
	ipa.WLAN2Cons, ipa.WIGIGProd, ipa.WIGIG1Cons,
	ipa.EthernetProd, ipa.EthernetCons,
	ipa.Test2Prod, ipa.Test2Cons,
}, row{
	ipa.MemcpyDMASyncProd: ep(ipa.Group50DMA, noFlt, seqDMA, pcie, 0, 22, 8, 16),
	ipa.MHIProd:           ep(ipa.Group50UL, flt, seq2nd, pcie, 10, 2, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.MHILowLatProd:     ep(ipa.Group50URLLC, flt, seq2nd, pcie, 12, 1, 8, 16).prefetch(ipa.PrefetchFreeSmart, 3),
	ipa.MHICons:           ep(ipa.Group50DL, noFlt, noSeq, pcie, 24, 8, 9, 9).tx(ipa.TxDL),
	ipa.MHILowLatCons:     ep(ipa.Group50URLLC, noFlt, noSeq, pcie, 25, 18, 9, 9).tx(ipa.TxDL),
	ipa.MHIDPLCons:        ep(ipa.Group50DL, noFlt, noSeq, pcie, 26, 19, 5, 5).tx(ipa.TxDL),
	ipa.MemcpyDMASyncCons: ep(ipa.Group50DMA, noFlt, noSeq, pcie, 30, 23, 9, 9).tx(ipa.TxDL),
}), map[ipa.Client]ipa.Client{
	ipa.Test2Prod: ipa.MHIProd,
	ipa.Test2Cons: ipa.MHICons,
})

// 5.1 adds a second Ethernet port and the C-V2X consumer in place of
// QBAP status.
var rev5_1 = derive(rev5_0, []ipa.Client{
	ipa.Q6QBAPStatusCons,
}, row{
	ipa.Ethernet2Prod: ep(ipa.Group50UL, flt, seq2nd, ddr, 0, 22, 8, 16),
	ipa.Ethernet2Cons: ep(ipa.Group50DL, noFlt, noSeq, ddr, 30, 23, 9, 9).tx(ipa.TxDL),
	ipa.Q6CV2XCons:    ep(ipa.Group50UL, noFlt, noSeq, ddr, 29, 8, 9, 9).on(ipa.EEQ6).tx(ipa.TxUL),
})

var rev5_1APQ = derive(rev5_1, []ipa.Client{
	ipa.Q6WANProd, ipa.Q6CmdProd, ipa.Q6DLNLODataProd, ipa.Q6DLNLOLLDataProd, ipa.Q6DLNLODataXlatProd,
	ipa.Q6LANCons, ipa.Q6ULNLODataCons, ipa.Q6ULNLOAckCons, ipa.Q6CV2XCons,
	ipa.AppsWANProd, ipa.AppsWANCons, ipa.AppsWANCoalCons,
	ipa.AppsWANLowLatProd, ipa.AppsWANLowLatCons,
	ipa.AppsWANLowLatDataProd, ipa.AppsWANLowLatDataCons,
	ipa.ODLDPLCons,
}, nil)

var rev5_2 = withAliases(row{
	ipa.USBProd:         ep(ipa.Group52ULDL, flt, seq2nd, ddr, 1, 0, 8, 16).prefetch(ipa.PrefetchSmart, 7),
	ipa.AppsWANProd:     ep(ipa.Group52ULDL, flt, seq2nd, ddr, 2, 11, 16, 32),
	ipa.WLAN1Prod:       ep(ipa.Group52ULDL, flt, seq2nd, ddr, 3, 5, 8, 16),
	ipa.AppsCmdProd:     ep(ipa.Group52ULDL, noFlt, seqDMA, ddr, 4, 12, 20, 24),
	ipa.AppsLANProd:     ep(ipa.Group52ULDL, flt, seqPktDMAP, ddr, 5, 14, 8, 16),
	ipa.Q6WANProd:       ep(ipa.Group52ULDL, flt, seqPkt, ddr, 6, 3, 16, 28).on(ipa.EEQ6),
	ipa.Q6CmdProd:       ep(ipa.Group52ULDL, noFlt, seqPkt, ddr, 7, 4, 20, 24).on(ipa.EEQ6),
	ipa.Q6DLNLODataProd: ep(ipa.Group52ULDL, flt, seqPkt, ddr, 8, 2, 16, 28).on(ipa.EEQ6),

	ipa.AppsLANCons:     ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 9, 9, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANCoalCons: ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 10, 13, 9, 9).tx(ipa.TxDL),
	ipa.AppsWANCons:     ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 11, 15, 9, 9).tx(ipa.TxDL),
	ipa.USBCons:         ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 12, 6, 9, 9).tx(ipa.TxDL),
	ipa.USBDPLCons:      ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 13, 3, 5, 5).tx(ipa.TxDL),
	ipa.ODLDPLCons:      ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 14, 10, 5, 5).tx(ipa.TxDL),
	ipa.WLAN2Cons:       ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 15, 8, 9, 9).tx(ipa.TxDL),
	ipa.Q6LANCons:       ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 16, 0, 9, 9).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.Q6ULNLODataCons: ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 17, 1, 5, 5).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.Q6ULNLOAckCons:  ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 18, 7, 5, 5).on(ipa.EEQ6).tx(ipa.TxUL),
	ipa.DummyCons:       ep(ipa.Group52ULDL, noFlt, noSeq, ddr, 31, 31, 8, 8).tx(ipa.TxDL),
}, usbTestAliases)

// 5.5 adds LAN coalescing and the throughput test consumer.
var rev5_5 = derive(rev5_0, nil, row{
	ipa.TputCons:        ep(ipa.Group50DL, noFlt, noSeq, ddr, 0, 23, 9, 9).tx(ipa.TxDL),
	ipa.AppsLANCoalCons: ep(ipa.Group50DL, noFlt, noSeq, ddr, 30, 22, 9, 9).tx(ipa.TxDL),
})

var rev5_5XR = derive(rev5_5, []ipa.Client{
	ipa.Q6WANProd, ipa.Q6CmdProd, ipa.Q6DLNLODataProd, ipa.Q6DLNLOLLDataProd, ipa.Q6DLNLODataXlatProd,
	ipa.Q6LANCons, ipa.Q6ULNLODataCons, ipa.Q6ULNLOAckCons, ipa.Q6QBAPStatusCons,
	ipa.AppsWANProd, ipa.AppsWANCons, ipa.AppsWANCoalCons,
	ipa.AppsWANLowLatProd, ipa.AppsWANLowLatCons,
	ipa.AppsWANLowLatDataProd, ipa.AppsWANLowLatDataCons,
	ipa.ODLDPLCons,
}, nil)
