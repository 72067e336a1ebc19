package ipa

import (
	"fmt"
	"strings"
)

// Client is a logical IPA client. Even values are producers (traffic
// into IPA), odd values are consumers. Gaps are reserved so that each
// producer/consumer pair shares the same value divided by two.
type Client int

const (
	HSIC1Prod Client = iota
	HSIC1Cons
	HSIC2Prod
	HSIC2Cons
	HSIC3Prod
	HSIC3Cons
	HSIC4Prod
	HSIC4Cons
	HSIC5Prod
	HSIC5Cons
	WLAN1Prod
	WLAN1Cons
	A5WLANAMPDUProd
	WLAN2Cons
	reserved14
	WLAN3Cons
	reserved16
	WLAN4Cons
	USBProd
	USBCons
	USB2Prod
	USB2Cons
	USB3Prod
	USB3Cons
	USB4Prod
	USB4Cons
	UCUSBProd
	USBDPLCons
	A2EmbeddedProd
	A2EmbeddedCons
	A2TetheredProd
	A2TetheredCons
	AppsLANProd
	AppsLANCons
	AppsWANProd
	AppsWANCons
	AppsCmdProd
	A5LANWANCons
	ODUProd
	ODUEmbCons
	reserved40
	ODUTethCons
	MHIProd
	MHICons
	MemcpyDMASyncProd
	MemcpyDMASyncCons
	MemcpyDMAAsyncProd
	MemcpyDMAAsyncCons
	EthernetProd
	EthernetCons
	Q6LANProd
	Q6LANCons
	Q6WANProd
	Q6WANCons
	Q6CmdProd
	Q6DUNCons
	Q6DecompProd
	Q6DecompCons
	Q6Decomp2Prod
	Q6Decomp2Cons
	reserved60
	Q6LTEWifiAggrCons
	TestProd
	TestCons
	Test1Prod
	Test1Cons
	Test2Prod
	Test2Cons
	Test3Prod
	Test3Cons
	Test4Prod
	Test4Cons
	reserved72
	DummyCons
	Q6DLNLODataProd
	Q6ULNLODataCons
	reserved76
	Q6ULNLOAckCons
	reserved78
	Q6QBAPStatusCons
	reserved80
	MHIDPLCons
	reserved82
	ODLDPLCons
	Q6AudioDMAMHIProd
	Q6AudioDMAMHICons
	WIGIGProd
	WIGIG1Cons
	reserved88
	WIGIG2Cons
	reserved90
	WIGIG3Cons
	reserved92
	WIGIG4Cons
	reserved94
	AppsWANCoalCons
	MHIPrimeTethProd
	MHIPrimeTethCons
	MHIPrimeRmnetProd
	MHIPrimeRmnetCons
	MHIPrimeDPLProd
	reserved101
	AQCEthernetProd
	AQCEthernetCons
	AppsWANLowLatProd
	AppsWANLowLatCons
	QDSSProd
	MHIQDSSCons
	RTKEthernetProd
	RTKEthernetCons
	MHILowLatProd
	MHILowLatCons
	MHI2Prod
	MHI2Cons
	Q6CV2XProd
	Q6CV2XCons
	Ethernet2Prod
	Ethernet2Cons
	reserved118
	WLAN2Cons1
	AppsWANLowLatDataProd
	AppsWANLowLatDataCons
	Q6DLNLOLLDataProd
	reserved123
	reserved124
	TputCons
	Q6DLNLODataXlatProd
	reserved127
	reserved128
	AppsLANCoalCons
	ClientMax
)

var clientNames = [ClientMax]string{
	HSIC1Prod:             "HSIC1_PROD",
	HSIC1Cons:             "HSIC1_CONS",
	HSIC2Prod:             "HSIC2_PROD",
	HSIC2Cons:             "HSIC2_CONS",
	HSIC3Prod:             "HSIC3_PROD",
	HSIC3Cons:             "HSIC3_CONS",
	HSIC4Prod:             "HSIC4_PROD",
	HSIC4Cons:             "HSIC4_CONS",
	HSIC5Prod:             "HSIC5_PROD",
	HSIC5Cons:             "HSIC5_CONS",
	WLAN1Prod:             "WLAN1_PROD",
	WLAN1Cons:             "WLAN1_CONS",
	A5WLANAMPDUProd:       "A5_WLAN_AMPDU_PROD",
	WLAN2Cons:             "WLAN2_CONS",
	WLAN3Cons:             "WLAN3_CONS",
	WLAN4Cons:             "WLAN4_CONS",
	USBProd:               "USB_PROD",
	USBCons:               "USB_CONS",
	USB2Prod:              "USB2_PROD",
	USB2Cons:              "USB2_CONS",
	USB3Prod:              "USB3_PROD",
	USB3Cons:              "USB3_CONS",
	USB4Prod:              "USB4_PROD",
	USB4Cons:              "USB4_CONS",
	UCUSBProd:             "UC_USB_PROD",
	USBDPLCons:            "USB_DPL_CONS",
	A2EmbeddedProd:        "A2_EMBEDDED_PROD",
	A2EmbeddedCons:        "A2_EMBEDDED_CONS",
	A2TetheredProd:        "A2_TETHERED_PROD",
	A2TetheredCons:        "A2_TETHERED_CONS",
	AppsLANProd:           "APPS_LAN_PROD",
	AppsLANCons:           "APPS_LAN_CONS",
	AppsWANProd:           "APPS_WAN_PROD",
	AppsWANCons:           "APPS_WAN_CONS",
	AppsCmdProd:           "APPS_CMD_PROD",
	A5LANWANCons:          "A5_LAN_WAN_CONS",
	ODUProd:               "ODU_PROD",
	ODUEmbCons:            "ODU_EMB_CONS",
	ODUTethCons:           "ODU_TETH_CONS",
	MHIProd:               "MHI_PROD",
	MHICons:               "MHI_CONS",
	MemcpyDMASyncProd:     "MEMCPY_DMA_SYNC_PROD",
	MemcpyDMASyncCons:     "MEMCPY_DMA_SYNC_CONS",
	MemcpyDMAAsyncProd:    "MEMCPY_DMA_ASYNC_PROD",
	MemcpyDMAAsyncCons:    "MEMCPY_DMA_ASYNC_CONS",
	EthernetProd:          "ETHERNET_PROD",
	EthernetCons:          "ETHERNET_CONS",
	Q6LANProd:             "Q6_LAN_PROD",
	Q6LANCons:             "Q6_LAN_CONS",
	Q6WANProd:             "Q6_WAN_PROD",
	Q6WANCons:             "Q6_WAN_CONS",
	Q6CmdProd:             "Q6_CMD_PROD",
	Q6DUNCons:             "Q6_DUN_CONS",
	Q6DecompProd:          "Q6_DECOMP_PROD",
	Q6DecompCons:          "Q6_DECOMP_CONS",
	Q6Decomp2Prod:         "Q6_DECOMP2_PROD",
	Q6Decomp2Cons:         "Q6_DECOMP2_CONS",
	Q6LTEWifiAggrCons:     "Q6_LTE_WIFI_AGGR_CONS",
	TestProd:              "TEST_PROD",
	TestCons:              "TEST_CONS",
	Test1Prod:             "TEST1_PROD",
	Test1Cons:             "TEST1_CONS",
	Test2Prod:             "TEST2_PROD",
	Test2Cons:             "TEST2_CONS",
	Test3Prod:             "TEST3_PROD",
	Test3Cons:             "TEST3_CONS",
	Test4Prod:             "TEST4_PROD",
	Test4Cons:             "TEST4_CONS",
	DummyCons:             "DUMMY_CONS",
	Q6DLNLODataProd:       "Q6_DL_NLO_DATA_PROD",
	Q6ULNLODataCons:       "Q6_UL_NLO_DATA_CONS",
	Q6ULNLOAckCons:        "Q6_UL_NLO_ACK_CONS",
	Q6QBAPStatusCons:      "Q6_QBAP_STATUS_CONS",
	MHIDPLCons:            "MHI_DPL_CONS",
	ODLDPLCons:            "ODL_DPL_CONS",
	Q6AudioDMAMHIProd:     "Q6_AUDIO_DMA_MHI_PROD",
	Q6AudioDMAMHICons:     "Q6_AUDIO_DMA_MHI_CONS",
	WIGIGProd:             "WIGIG_PROD",
	WIGIG1Cons:            "WIGIG1_CONS",
	WIGIG2Cons:            "WIGIG2_CONS",
	WIGIG3Cons:            "WIGIG3_CONS",
	WIGIG4Cons:            "WIGIG4_CONS",
	AppsWANCoalCons:       "APPS_WAN_COAL_CONS",
	MHIPrimeTethProd:      "MHI_PRIME_TETH_PROD",
	MHIPrimeTethCons:      "MHI_PRIME_TETH_CONS",
	MHIPrimeRmnetProd:     "MHI_PRIME_RMNET_PROD",
	MHIPrimeRmnetCons:     "MHI_PRIME_RMNET_CONS",
	MHIPrimeDPLProd:       "MHI_PRIME_DPL_PROD",
	AQCEthernetProd:       "AQC_ETHERNET_PROD",
	AQCEthernetCons:       "AQC_ETHERNET_CONS",
	AppsWANLowLatProd:     "APPS_WAN_LOW_LAT_PROD",
	AppsWANLowLatCons:     "APPS_WAN_LOW_LAT_CONS",
	QDSSProd:              "QDSS_PROD",
	MHIQDSSCons:           "MHI_QDSS_CONS",
	RTKEthernetProd:       "RTK_ETHERNET_PROD",
	RTKEthernetCons:       "RTK_ETHERNET_CONS",
	MHILowLatProd:         "MHI_LOW_LAT_PROD",
	MHILowLatCons:         "MHI_LOW_LAT_CONS",
	MHI2Prod:              "MHI2_PROD",
	MHI2Cons:              "MHI2_CONS",
	Q6CV2XProd:            "Q6_CV2X_PROD",
	Q6CV2XCons:            "Q6_CV2X_CONS",
	Ethernet2Prod:         "ETHERNET2_PROD",
	Ethernet2Cons:         "ETHERNET2_CONS",
	WLAN2Cons1:            "WLAN2_CONS1",
	AppsWANLowLatDataProd: "APPS_WAN_LOW_LAT_DATA_PROD",
	AppsWANLowLatDataCons: "APPS_WAN_LOW_LAT_DATA_CONS",
	Q6DLNLOLLDataProd:     "Q6_DL_NLO_LL_DATA_PROD",
	TputCons:              "TPUT_CONS",
	Q6DLNLODataXlatProd:   "Q6_DL_NLO_DATA_XLAT_PROD",
	AppsLANCoalCons:       "APPS_LAN_COAL_CONS",
}

// Valid reports whether c is inside the enumeration range.
func (c Client) Valid() bool {
	return c >= 0 && c < ClientMax
}

// Reserved reports whether c is a placeholder slot with no client.
func (c Client) Reserved() bool {
	return c.Valid() && clientNames[c] == ""
}

// IsProd reports whether c is a producer.
func (c Client) IsProd() bool {
	return c.Valid() && c%2 == 0
}

// IsCons reports whether c is a consumer.
func (c Client) IsCons() bool {
	return c.Valid() && c%2 == 1
}

// IsTest reports whether c is one of the test clients. Test clients
// may alias the pipes of production clients.
func (c Client) IsTest() bool {
	return c >= TestProd && c <= Test4Cons
}

// String returns the IPA client name, e.g. "USB_PROD".
func (c Client) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Client(%d)", int(c))
	}
	if name := clientNames[c]; name != "" {
		return name
	}
	return fmt.Sprintf("RESERVED_%d", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Client) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseClient parses a client name as produced by String. The
// "IPA_CLIENT_" prefix is accepted and ignored.
func ParseClient(s string) (Client, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "IPA_CLIENT_")
	for c := Client(0); c < ClientMax; c++ {
		if clientNames[c] != "" && clientNames[c] == s {
			return c, nil
		}
	}
	return ClientMax, fmt.Errorf("unknown client %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Client) UnmarshalText(b []byte) error {
	v, err := ParseClient(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
