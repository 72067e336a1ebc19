package rsrc

// limits holds the {min, max} of every category per group, indexed by
// group. A max of 255 leaves the group unbounded.
var limits = map[family]map[Category][]Limit{
	// UL, DL, DIAG, DMA, Q6ZIP, UC_RX_Q
	famV3_0: {
		SrcPktContexts:     {l(3, 255), l(3, 255), l(1, 255), l(1, 255), l(1, 255), l(2, 255)},
		SrcHdrSectors:      unlimited(6),
		SrcHdri1Buffer:     unlimited(6),
		SrcDescriptorLists: {l(14, 14), l(16, 16), l(5, 5), l(5, 5), l(0, 0), l(8, 8)},
		SrcDescriptorBuff:  {l(19, 19), l(26, 26), l(3, 3), l(7, 7), l(0, 0), l(8, 8)},
		SrcHdri2Buffers:    unlimited(6),
		SrcHpsDmars:        unlimited(6),
		SrcAckEntries:      {l(14, 14), l(16, 16), l(5, 5), l(5, 5), l(0, 0), l(8, 8)},
		DstDataSectors:     {l(2, 2), l(3, 3), l(0, 0), l(2, 2), l(1, 1), l(0, 0)},
		DstDataSectorLists: unlimited(6),
		DstDpsDmars:        {l(1, 1), l(1, 1), l(1, 1), l(1, 1), l(1, 1), l(0, 0)},
		RxHpsCmdq:          {l(16, 16), l(24, 24), l(8, 8), l(8, 8)},
	},
	// LWA_DL, UL_DL, MHI_DMA, UC_RX_Q
	famV3_5: {
		SrcPktContexts:     {l(1, 255), l(1, 255), l(0, 255), l(1, 255)},
		SrcDescriptorLists: {l(10, 10), l(10, 10), l(8, 8), l(0, 0)},
		SrcDescriptorBuff:  {l(12, 12), l(14, 14), l(8, 8), l(0, 0)},
		SrcHpsDmars:        {l(0, 255), l(0, 255), l(0, 255), l(0, 255)},
		SrcAckEntries:      {l(0, 255), l(0, 255), l(0, 255), l(0, 255)},
		DstDataSectors:     {l(4, 4), l(4, 4), l(3, 3)},
		DstDpsDmars:        {l(2, 255), l(1, 255), l(1, 2)},
		RxHpsCmdq:          {l(16, 16), l(24, 24), l(8, 8), l(8, 8)},
	},
	// LWA_DL, UL_DL, MHI_DMA, UC_RX_Q
	famV4_0: {
		SrcPktContexts:     {l(3, 8), l(3, 8), l(3, 8), l(1, 255)},
		SrcDescriptorLists: {l(9, 9), l(9, 9), l(9, 9), l(0, 0)},
		SrcDescriptorBuff:  {l(9, 9), l(9, 9), l(9, 9), l(0, 0)},
		SrcHpsDmars:        {l(0, 255), l(0, 255), l(0, 255), l(0, 255)},
		SrcAckEntries:      {l(0, 255), l(0, 255), l(0, 255), l(0, 255)},
		DstDataSectors:     {l(4, 4), l(4, 4), l(3, 3)},
		DstDpsDmars:        {l(2, 255), l(1, 255), l(1, 2)},
		RxHpsCmdq:          {l(20, 20), l(20, 20), l(8, 8), l(8, 8)},
	},
	// UL_DL
	famLite: {
		SrcPktContexts:     {l(3, 63)},
		SrcDescriptorLists: {l(3, 10)},
		SrcDescriptorBuff:  {l(10, 24)},
		SrcHpsDmars:        {l(0, 63)},
		SrcAckEntries:      {l(0, 63)},
		DstDataSectors:     {l(3, 3)},
		DstDpsDmars:        {l(1, 63)},
		RxHpsCmdq:          {l(22, 22)},
	},
	// PCIE, UL_DL, DMA, QDSS, UC_RX_Q
	famV4_5: {
		SrcPktContexts:     {l(1, 63), l(1, 63), l(0, 0), l(0, 0), l(0, 0)},
		SrcDescriptorLists: {l(8, 8), l(8, 8), l(0, 0), l(0, 0), l(0, 0)},
		SrcDescriptorBuff:  {l(12, 12), l(12, 12), l(0, 0), l(0, 0), l(0, 0)},
		SrcHpsDmars:        {l(0, 63), l(0, 63), l(0, 0), l(0, 0), l(0, 0)},
		SrcAckEntries:      {l(14, 14), l(20, 20), l(0, 0), l(0, 0), l(0, 0)},
		DstDataSectors:     {l(4, 4), l(4, 4), l(0, 0), l(0, 0), l(0, 0)},
		DstDpsDmars:        {l(2, 63), l(1, 63), l(0, 0), l(0, 0), l(0, 0)},
		RxHpsCmdq:          {l(16, 16), l(24, 24), l(0, 0), l(0, 0), l(0, 0)},
	},
	// UL_DL, DMA, UC_RX
	famV4_9: {
		SrcPktContexts:     {l(1, 12), l(1, 1), l(1, 12)},
		SrcDescriptorLists: {l(20, 20), l(2, 2), l(3, 3)},
		SrcDescriptorBuff:  {l(38, 38), l(4, 4), l(8, 8)},
		SrcHpsDmars:        {l(0, 4), l(0, 4), l(0, 4)},
		SrcAckEntries:      {l(30, 30), l(8, 8), l(8, 8)},
		DstDataSectors:     {l(9, 9), l(1, 1), l(1, 1), l(0, 0)},
		DstDpsDmars:        {l(2, 63), l(1, 2), l(1, 2), l(0, 2)},
		RxHpsCmdq:          {l(22, 22), l(8, 8), l(8, 8)},
	},
	// UL, DL, DMA, QDSS, URLLC, UC and DRB_IP on the destination side
	famV5_0: {
		SrcPktContexts:     {l(3, 9), l(4, 10), l(1, 1), l(1, 1), l(1, 63), l(0, 63)},
		SrcDescriptorLists: {l(9, 9), l(12, 12), l(2, 2), l(2, 2), l(10, 10), l(0, 63)},
		SrcDescriptorBuff:  {l(9, 9), l(24, 24), l(4, 4), l(4, 4), l(10, 10), l(0, 63)},
		SrcHpsDmars:        {l(0, 63), l(0, 63), l(0, 63), l(0, 63), l(1, 63), l(0, 63)},
		SrcAckEntries:      {l(22, 22), l(16, 16), l(6, 6), l(2, 2), l(2, 2), l(0, 63)},
		DstDataSectors:     {l(6, 6), l(5, 5), l(2, 2), l(2, 2), l(3, 3), l(0, 63), l(39, 39)},
		DstDpsDmars:        {l(0, 3), l(0, 3), l(1, 2), l(1, 2), l(0, 2), l(0, 63), l(0, 0)},
		DstUlsoSegments:    {l(0, 63), l(0, 63), l(0, 0), l(0, 0), l(0, 0), l(0, 0), l(0, 0)},
		RxHpsCmdq:          {l(16, 16), l(24, 24), l(1, 1), l(1, 1), l(8, 8), l(0, 0)},
	},
	// UL_DL, DMA, UC
	famV5_2: {
		SrcPktContexts:     {l(3, 10), l(1, 1), l(1, 63)},
		SrcDescriptorLists: {l(12, 12), l(2, 2), l(0, 63)},
		SrcDescriptorBuff:  {l(24, 24), l(4, 4), l(0, 63)},
		SrcHpsDmars:        {l(0, 63), l(0, 63), l(0, 63)},
		SrcAckEntries:      {l(22, 22), l(6, 6), l(0, 63)},
		DstDataSectors:     {l(6, 6), l(2, 2), l(0, 63)},
		DstDpsDmars:        {l(0, 3), l(1, 2), l(0, 63)},
		DstUlsoSegments:    {l(0, 63), l(0, 0), l(0, 0)},
		RxHpsCmdq:          {l(22, 22), l(1, 1), l(0, 0)},
	},
}

// rxHpsWeights is the HPS fetch arbiter weighting for the families
// where software owns it.
var rxHpsWeights = map[family][4]uint32{
	famV3_5: {1, 1, 1, 1},
	famV4_0: {2, 4, 1, 1},
	famLite: {1, 1, 1, 1},
}
