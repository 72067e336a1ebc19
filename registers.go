package ipa

// Register is a symbolic register identifier. Bit layouts are owned
// by the register HAL; this package only names registers and the
// field values written to them.
type Register string

// Per-endpoint registers, indexed by pipe.
const (
	RegEndpInitHdr         Register = "ENDP_INIT_HDR_n"
	RegEndpInitHdrExt      Register = "ENDP_INIT_HDR_EXT_n"
	RegEndpInitAggr        Register = "ENDP_INIT_AGGR_n"
	RegEndpInitCfg         Register = "ENDP_INIT_CFG_n"
	RegEndpInitULSOCfg     Register = "ENDP_INIT_ULSO_CFG_n"
	RegEndpInitNAT         Register = "ENDP_INIT_NAT_n"
	RegEndpInitConnTrack   Register = "ENDP_INIT_CONN_TRACK_n"
	RegEndpInitMode        Register = "ENDP_INIT_MODE_n"
	RegEndpInitSeq         Register = "ENDP_INIT_SEQ_n"
	RegEndpInitRoute       Register = "ENDP_INIT_ROUTE_n"
	RegEndpInitDeaggr      Register = "ENDP_INIT_DEAGGR_n"
	RegEndpInitHdrMetaMask Register = "ENDP_INIT_HDR_METADATA_MASK_n"
	RegEndpInitProdCfg     Register = "ENDP_INIT_PROD_CFG_n"
	RegEndpInitHOLBEn      Register = "ENDP_INIT_HOL_BLOCK_EN_n"
	RegEndpInitHOLBTimer   Register = "ENDP_INIT_HOL_BLOCK_TIMER_n"
	RegEndpInitCtrl        Register = "ENDP_INIT_CTRL_n"
)

// Resource-group registers, indexed by resource type n. Each packs
// the limits of two groups (x and y).
const (
	RegSrcRsrcGrp01 Register = "SRC_RSRC_GRP_01_RSRC_TYPE_n"
	RegSrcRsrcGrp23 Register = "SRC_RSRC_GRP_23_RSRC_TYPE_n"
	RegSrcRsrcGrp45 Register = "SRC_RSRC_GRP_45_RSRC_TYPE_n"
	RegSrcRsrcGrp67 Register = "SRC_RSRC_GRP_67_RSRC_TYPE_n"
	RegDstRsrcGrp01 Register = "DST_RSRC_GRP_01_RSRC_TYPE_n"
	RegDstRsrcGrp23 Register = "DST_RSRC_GRP_23_RSRC_TYPE_n"
	RegDstRsrcGrp45 Register = "DST_RSRC_GRP_45_RSRC_TYPE_n"
	RegDstRsrcGrp67 Register = "DST_RSRC_GRP_67_RSRC_TYPE_n"
)

// Global registers.
const (
	RegRxHpsClientsMinDepth0 Register = "RX_HPS_CLIENTS_MIN_DEPTH_0"
	RegRxHpsClientsMinDepth1 Register = "RX_HPS_CLIENTS_MIN_DEPTH_1"
	RegRxHpsClientsMaxDepth0 Register = "RX_HPS_CLIENTS_MAX_DEPTH_0"
	RegRxHpsClientsMaxDepth1 Register = "RX_HPS_CLIENTS_MAX_DEPTH_1"
	RegHpsFtchArbQueueWeight Register = "HPS_FTCH_ARB_QUEUE_WEIGHT"
	RegTimersPulseGranCfg    Register = "TIMERS_PULSE_GRAN_CFG"
	RegTimersXOClkDivCfg     Register = "TIMERS_XO_CLK_DIV_CFG"
	RegQtimerTimestampCfg    Register = "QTIMER_TIMESTAMP_CFG"
)

// NoIndex marks a write to a global register.
const NoIndex = -1

// TimerFields is the encoded form of a time limit. Legacy encodings
// carry only Value; pulse-generator encodings carry PulseGen and
// Scaled.
type TimerFields struct {
	Legacy   bool   `json:"legacy"`
	Value    uint32 `json:"value,omitempty"`
	PulseGen uint8  `json:"pulse_gen,omitempty"`
	Scaled   uint32 `json:"scaled,omitempty"`
}

// AggrFields is written to RegEndpInitAggr.
type AggrFields struct {
	AggrConfig
	Time TimerFields
}

// CfgFields is written to RegEndpInitCfg.
type CfgFields struct {
	CfgConfig
	QMBMaster BusMaster
}

// ModeFields is written to RegEndpInitMode.
type ModeFields struct {
	Mode    PipeMode
	DstPipe int
}

// SeqFields is written to RegEndpInitSeq.
type SeqFields struct {
	Type SeqType
}

// RouteFields is written to RegEndpInitRoute.
type RouteFields struct {
	TableIndex uint32
}

// ProdCfgFields is written to RegEndpInitProdCfg.
type ProdCfgFields struct {
	TxInstance TxInstance
}

// HOLBEnFields is written to RegEndpInitHOLBEn.
type HOLBEnFields struct {
	Enable bool
}

// CtrlFields is written to RegEndpInitCtrl.
type CtrlFields struct {
	Suspend bool
	Delay   bool
}

// RsrcGrpFields carries the limits of a register pair of groups.
type RsrcGrpFields struct {
	XMin, XMax uint32
	YMin, YMax uint32
}

// RxHpsDepthFields carries the RX HPS command-queue depth of four
// groups.
type RxHpsDepthFields struct {
	Clients [4]uint32
}

// HpsWeightFields carries the HPS fetch arbiter queue weights.
type HpsWeightFields struct {
	Weights [4]uint32
}

// PulseGranFields carries the pulse generator granularities in
// microseconds. Unused generators are zero.
type PulseGranFields struct {
	StepsUs [4]uint32
}

// XOClkDivFields carries the XO clock divider.
type XOClkDivFields struct {
	Enable bool
	Value  uint32
}

// QtimerTimestampFields selects the QTIMER bits sampled for
// timestamps.
type QtimerTimestampFields struct {
	DPLLSB uint8
	TagLSB uint8
	NATLSB uint8
	Sel    bool
}
