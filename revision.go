// Package ipa holds the domain types shared by the IPA endpoint
// mapping, resource-limit and timer packages.
package ipa

import (
	"fmt"
	"log/slog"
	"strings"
)

// HWType is the raw hardware generation code read from the IPA
// version register.
type HWType uint32

const (
	HWNone   HWType = 0
	HWv3_0   HWType = 10
	HWv3_1   HWType = 11
	HWv3_5   HWType = 12
	HWv3_5_1 HWType = 13
	HWv4_0   HWType = 14
	HWv4_1   HWType = 15
	HWv4_2   HWType = 16
	HWv4_5   HWType = 17
	HWv4_7   HWType = 18
	HWv4_9   HWType = 19
	HWv4_11  HWType = 20
	HWv5_0   HWType = 21
	HWv5_1   HWType = 22
	HWv5_2   HWType = 23
	HWv5_5   HWType = 24
)

var hwTypeNames = map[HWType]string{
	HWv3_0:   "3.0",
	HWv3_1:   "3.1",
	HWv3_5:   "3.5",
	HWv3_5_1: "3.5.1",
	HWv4_0:   "4.0",
	HWv4_1:   "4.1",
	HWv4_2:   "4.2",
	HWv4_5:   "4.5",
	HWv4_7:   "4.7",
	HWv4_9:   "4.9",
	HWv4_11:  "4.11",
	HWv5_0:   "5.0",
	HWv5_1:   "5.1",
	HWv5_2:   "5.2",
	HWv5_5:   "5.5",
}

// String returns the dotted version, or "invalid" for unknown codes.
func (h HWType) String() string {
	if s, ok := hwTypeNames[h]; ok {
		return s
	}
	return "invalid"
}

// Valid reports whether h is a known hardware generation.
func (h HWType) Valid() bool {
	_, ok := hwTypeNames[h]
	return ok
}

// ParseHWType accepts either a dotted version ("4.5") or the raw
// numeric code ("17").
func ParseHWType(s string) (HWType, error) {
	s = strings.TrimSpace(s)
	for h, name := range hwTypeNames {
		if name == s {
			return h, nil
		}
	}
	var raw uint32
	if _, err := fmt.Sscanf(s, "%d", &raw); err == nil && HWType(raw).Valid() {
		return HWType(raw), nil
	}
	return HWNone, fmt.Errorf("unknown hardware type %q", s)
}

// Revision identifies a hardware configuration: a generation
// combined with its platform variant. The numbering is persisted and
// logged, so new revisions are only ever appended.
type Revision int

const (
	Rev3_0 Revision = iota
	Rev3_5
	Rev3_5_MHI
	Rev3_5_1
	Rev4_0
	Rev4_0_MHI
	Rev4_1
	Rev4_1_APQ
	Rev4_2
	Rev4_5
	Rev4_5_MHI
	Rev4_5_APQ
	Rev4_5_AUTO
	Rev4_5_AUTO_MHI
	Rev4_7
	Rev4_9
	Rev4_11
	Rev5_0
	Rev5_0_MHI
	Rev5_1
	Rev5_1_APQ
	Rev5_2
	Rev5_5
	Rev5_5_XR
	RevisionMax
)

var revisionInfo = [RevisionMax]struct {
	name string
	hw   HWType
}{
	Rev3_0:          {"3.0", HWv3_0},
	Rev3_5:          {"3.5", HWv3_5},
	Rev3_5_MHI:      {"3.5_MHI", HWv3_5},
	Rev3_5_1:        {"3.5.1", HWv3_5_1},
	Rev4_0:          {"4.0", HWv4_0},
	Rev4_0_MHI:      {"4.0_MHI", HWv4_0},
	Rev4_1:          {"4.1", HWv4_1},
	Rev4_1_APQ:      {"4.1_APQ", HWv4_1},
	Rev4_2:          {"4.2", HWv4_2},
	Rev4_5:          {"4.5", HWv4_5},
	Rev4_5_MHI:      {"4.5_MHI", HWv4_5},
	Rev4_5_APQ:      {"4.5_APQ", HWv4_5},
	Rev4_5_AUTO:     {"4.5_AUTO", HWv4_5},
	Rev4_5_AUTO_MHI: {"4.5_AUTO_MHI", HWv4_5},
	Rev4_7:          {"4.7", HWv4_7},
	Rev4_9:          {"4.9", HWv4_9},
	Rev4_11:         {"4.11", HWv4_11},
	Rev5_0:          {"5.0", HWv5_0},
	Rev5_0_MHI:      {"5.0_MHI", HWv5_0},
	Rev5_1:          {"5.1", HWv5_1},
	Rev5_1_APQ:      {"5.1_APQ", HWv5_1},
	Rev5_2:          {"5.2", HWv5_2},
	Rev5_5:          {"5.5", HWv5_5},
	Rev5_5_XR:       {"5.5_XR", HWv5_5},
}

// Valid reports whether r names a known revision.
func (r Revision) Valid() bool {
	return r >= 0 && r < RevisionMax
}

// String returns the revision name, e.g. "4.5_AUTO_MHI".
func (r Revision) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Revision(%d)", int(r))
	}
	return revisionInfo[r].name
}

// HW returns the hardware generation the revision belongs to.
func (r Revision) HW() HWType {
	if !r.Valid() {
		return HWNone
	}
	return revisionInfo[r].hw
}

// MarshalText implements encoding.TextMarshaler.
func (r Revision) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Revision) UnmarshalText(b []byte) error {
	v, err := ParseRevision(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Revisions returns every known revision in enumeration order.
func Revisions() []Revision {
	revs := make([]Revision, 0, RevisionMax)
	for r := Revision(0); r < RevisionMax; r++ {
		revs = append(revs, r)
	}
	return revs
}

// ParseRevision parses a revision name as produced by String.
func ParseRevision(s string) (Revision, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r := Revision(0); r < RevisionMax; r++ {
		if strings.ToUpper(revisionInfo[r].name) == s {
			return r, nil
		}
	}
	return RevisionMax, fmt.Errorf("unknown revision %q", s)
}

// PlatformType distinguishes modem-attached SoCs from standalone
// application processors and XR parts.
type PlatformType int

const (
	PlatformMSM PlatformType = iota
	PlatformAPQ
	PlatformXR
)

// String returns the lower-case platform name.
func (p PlatformType) String() string {
	switch p {
	case PlatformAPQ:
		return "apq"
	case PlatformXR:
		return "xr"
	default:
		return "msm"
	}
}

// ParsePlatformType parses "msm", "apq" or "xr".
func ParsePlatformType(s string) (PlatformType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "msm":
		return PlatformMSM, nil
	case "apq":
		return PlatformAPQ, nil
	case "xr":
		return PlatformXR, nil
	default:
		return PlatformMSM, fmt.Errorf("unknown platform type %q", s)
	}
}

// Platform carries the boot-time platform flags that select a
// revision variant.
type Platform struct {
	MHI  bool
	Type PlatformType
	Auto bool
}

// ResolveRevision maps a raw hardware code and platform flags to the
// active revision. Unknown codes are logged and fall back to Rev3_0
// rather than failing attach.
func ResolveRevision(raw HWType, p Platform, logger *slog.Logger) Revision {
	switch raw {
	case HWv3_0, HWv3_1:
		return Rev3_0
	case HWv3_5:
		if p.MHI {
			return Rev3_5_MHI
		}
		return Rev3_5
	case HWv3_5_1:
		return Rev3_5_1
	case HWv4_0:
		if p.MHI {
			return Rev4_0_MHI
		}
		return Rev4_0
	case HWv4_1:
		if p.Type == PlatformAPQ {
			return Rev4_1_APQ
		}
		return Rev4_1
	case HWv4_2:
		return Rev4_2
	case HWv4_5:
		rev := Rev4_5
		if p.MHI {
			rev = Rev4_5_MHI
		}
		if p.Type == PlatformAPQ {
			rev = Rev4_5_APQ
		}
		if p.Auto {
			rev = Rev4_5_AUTO
		}
		if p.Auto && p.MHI {
			rev = Rev4_5_AUTO_MHI
		}
		return rev
	case HWv4_7:
		return Rev4_7
	case HWv4_9:
		return Rev4_9
	case HWv4_11:
		return Rev4_11
	case HWv5_0:
		if p.MHI {
			return Rev5_0_MHI
		}
		return Rev5_0
	case HWv5_1:
		if p.Type == PlatformAPQ {
			return Rev5_1_APQ
		}
		return Rev5_1
	case HWv5_2:
		return Rev5_2
	case HWv5_5:
		if p.Type == PlatformXR {
			return Rev5_5_XR
		}
		return Rev5_5
	}

	if logger != nil {
		logger.Error("unsupported hardware type, falling back", "hw_type", uint32(raw), "revision", Rev3_0)
	}
	return Rev3_0
}
