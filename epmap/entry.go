// Package epmap holds the static endpoint configuration tables and
// the per-revision query API built over them.
package epmap

import "github.com/frobware/go-ipa"

// GSIInfo is the GSI transport attachment of an endpoint.
type GSIInfo struct {
	Pipe              int              `json:"pipe"`
	Channel           int              `json:"channel"`
	TLV               int              `json:"tlv"`
	AOS               int              `json:"aos"`
	EE                ipa.EE           `json:"ee"`
	Prefetch          ipa.PrefetchMode `json:"prefetch"`
	PrefetchThreshold uint8            `json:"prefetch_threshold,omitempty"`
}

// Entry is one cell of the endpoint configuration table. A cell with
// Valid false means the client does not exist on that revision.
type Entry struct {
	Valid      bool              `json:"valid"`
	Group      ipa.ResourceGroup `json:"group"`
	SupportFlt bool              `json:"support_flt"`
	Seq        ipa.SeqType       `json:"seq"`
	QMB        ipa.BusMaster     `json:"qmb"`
	Tx         ipa.TxInstance    `json:"tx"`
	GSI        GSIInfo           `json:"gsi"`
}

// ep builds a valid AP-owned entry; the modifiers below adjust the
// less common fields.
func ep(g ipa.ResourceGroup, flt bool, seq ipa.SeqType, qmb ipa.BusMaster, pipe, ch, tlv, aos int) Entry {
	return Entry{
		Valid:      true,
		Group:      g,
		SupportFlt: flt,
		Seq:        seq,
		QMB:        qmb,
		Tx:         ipa.TxNA,
		GSI: GSIInfo{
			Pipe:     pipe,
			Channel:  ch,
			TLV:      tlv,
			AOS:      aos,
			EE:       ipa.EEAP,
			Prefetch: ipa.PrefetchBufs,
		},
	}
}

func (e Entry) on(ee ipa.EE) Entry {
	e.GSI.EE = ee
	return e
}

func (e Entry) prefetch(mode ipa.PrefetchMode, threshold uint8) Entry {
	e.GSI.Prefetch = mode
	e.GSI.PrefetchThreshold = threshold
	return e
}

func (e Entry) tx(t ipa.TxInstance) Entry {
	e.Tx = t
	return e
}

// Authoring shorthands used by the table files.
const (
	flt   = true
	noFlt = false
	ddr   = ipa.BusDDR
	pcie  = ipa.BusPCIe
	noSeq = ipa.SeqInvalid

	seqDMA     = ipa.SeqDMAOnly
	seqPkt     = ipa.SeqPktProcessNoDecUCP
	seqPktDec  = ipa.SeqPktProcessDecUCP
	seq2nd     = ipa.Seq2ndPktProcessPassNoDecUCP
	seq2ndDec  = ipa.Seq2ndPktProcessPassDecUCP
	seqPktDMAP = ipa.SeqPktProcessNoDecNoUCPDMAP
	seqDecomp  = ipa.SeqDMACompDecomp
)

type row map[ipa.Client]Entry

// derive returns a copy of base with the clients in drop removed and
// the entries in set added or replaced.
func derive(base row, drop []ipa.Client, set row) row {
	out := make(row, len(base)+len(set))
	for c, e := range base {
		out[c] = e
	}
	for _, c := range drop {
		delete(out, c)
	}
	for c, e := range set {
		out[c] = e
	}
	return out
}

// withAliases points each test client at the entry of the client it
// aliases. Aliases of clients absent from r are skipped.
func withAliases(r row, aliases map[ipa.Client]ipa.Client) row {
	for test, c := range aliases {
		if e, ok := r[c]; ok {
			r[test] = e
		}
	}
	return r
}

var usbTestAliases = map[ipa.Client]ipa.Client{
	ipa.TestProd:  ipa.USBProd,
	ipa.Test1Prod: ipa.USBProd,
	ipa.TestCons:  ipa.USBCons,
	ipa.Test1Cons: ipa.USBCons,
}
