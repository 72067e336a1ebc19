package rsrc

import (
	"errors"
	"fmt"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
)

// LimitFor returns the limit of cat for group on rev.
func LimitFor(rev ipa.Revision, cat Category, group ipa.ResourceGroup) (Limit, error) {
	if !rev.Valid() {
		return Limit{}, fmt.Errorf("invalid revision %d", int(rev))
	}
	cells, ok := limits[revisionFamily[rev]][cat]
	if !ok {
		return Limit{}, fmt.Errorf("%s: no %s limits", rev, cat)
	}
	if group < 0 || int(group) >= len(cells) {
		return Limit{}, fmt.Errorf("%s: %s group %d out of range [0, %d)", rev, cat, group, len(cells))
	}
	return cells[group], nil
}

// RxHpsWeight returns the HPS fetch arbiter weights of rev. Only
// revisions from 3.5 up to but excluding 4.5 configure the weights in
// software; later hardware owns them in firmware and ok is false.
func RxHpsWeight(rev ipa.Revision) (weights [4]uint32, ok bool) {
	hw := rev.HW()
	if hw < ipa.HWv3_5 || hw >= ipa.HWv4_5 {
		return weights, false
	}
	weights, ok = rxHpsWeights[revisionFamily[rev]]
	return weights, ok
}

// Validate checks the limit table of rev: every category of the
// layout has one cell per group, min <= max in every cell, and the
// minimums of a category fit in its hardware total.
func Validate(rev ipa.Revision) error {
	layout, ok := LayoutFor(rev)
	if !ok {
		return fmt.Errorf("%s: no resource layout", rev)
	}
	table := limits[revisionFamily[rev]]

	var errs []error
	for _, cat := range layout.Categories() {
		cells, ok := table[cat]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %s has no limits", rev, cat))
			continue
		}
		if want := layout.Groups(cat); len(cells) != want {
			errs = append(errs, fmt.Errorf("%s: %s has %d groups, layout has %d", rev, cat, len(cells), want))
		}
		var sum uint32
		for g, lim := range cells {
			if lim.Min > lim.Max {
				errs = append(errs, fmt.Errorf("%s: %s group %d min %d exceeds max %d", rev, cat, g, lim.Min, lim.Max))
			}
			sum += lim.Min
		}
		if sum > Total(cat) {
			errs = append(errs, fmt.Errorf("%s: %s minimums sum to %d, total is %d", rev, cat, sum, Total(cat)))
		}
	}
	for cat := range table {
		if layout.Groups(cat) == 0 {
			errs = append(errs, fmt.Errorf("%s: %s has limits but is not programmed", rev, cat))
		}
	}
	errs = append(errs, checkRouting(rev, "source", layout.SrcRegs, layout.SrcGroups)...)
	errs = append(errs, checkRouting(rev, "destination", layout.DstRegs, layout.DstGroups)...)
	return errors.Join(errs...)
}

// checkRouting verifies that pairs route every group in [0, groups)
// exactly once.
func checkRouting(rev ipa.Revision, side string, pairs []RegPair, groups int) []error {
	var errs []error
	seen := make([]bool, groups)
	for _, p := range pairs {
		for _, g := range []int{p.X, p.Y} {
			switch {
			case g == -1 && p.Y == g:
			case g < 0 || g >= groups:
				errs = append(errs, fmt.Errorf("%s: %s register %s routes group %d of %d", rev, side, p.Reg, g, groups))
			case seen[g]:
				errs = append(errs, fmt.Errorf("%s: %s group %d routed twice", rev, side, g))
			default:
				seen[g] = true
			}
		}
	}
	for g, ok := range seen {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %s group %d has no register", rev, side, g))
		}
	}
	return errs
}

// ValidateAll validates every revision and returns the joined errors.
func ValidateAll() error {
	var errs []error
	for _, rev := range ipa.Revisions() {
		if err := Validate(rev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Program returns the register writes that install the resource
// group limits of rev. RX HPS client depths are only written on
// hardware older than 3.1 or when the platform is virtual or
// emulated; the arbiter weights only where RxHpsWeight applies.
func Program(rev ipa.Revision, mode ipa.HWMode) ([]action.Action, error) {
	if err := Validate(rev); err != nil {
		return nil, err
	}
	layout, _ := LayoutFor(rev)
	table := limits[revisionFamily[rev]]

	var actions []action.Action
	for n, cat := range layout.Src {
		actions = append(actions, pairWrites(layout.SrcRegs, n, table[cat])...)
	}
	for n, cat := range layout.Dst {
		actions = append(actions, pairWrites(layout.DstRegs, n, table[cat])...)
	}

	if rev.HW() < ipa.HWv3_1 || mode == ipa.HWModeVirtual || mode == ipa.HWModeEmulation {
		actions = append(actions, rxHpsWrites(rev, table[RxHpsCmdq])...)
	}

	if w, ok := RxHpsWeight(rev); ok {
		actions = append(actions, action.WriteGlobal(ipa.RegHpsFtchArbQueueWeight, ipa.HpsWeightFields{Weights: w}))
	}
	return actions, nil
}

func pairWrites(pairs []RegPair, n int, cells []Limit) []action.Action {
	actions := make([]action.Action, 0, len(pairs))
	for _, p := range pairs {
		var f ipa.RsrcGrpFields
		f.XMin, f.XMax = cells[p.X].Min, cells[p.X].Max
		if p.Y >= 0 {
			f.YMin, f.YMax = cells[p.Y].Min, cells[p.Y].Max
		}
		actions = append(actions, action.Write(p.Reg, n, f))
	}
	return actions
}

// rxHpsWrites returns the RX HPS client depth writes. The second
// register pair, clients 4 to 7, exists only up to 3.1.
func rxHpsWrites(rev ipa.Revision, cells []Limit) []action.Action {
	regs := [][2]ipa.Register{
		{ipa.RegRxHpsClientsMinDepth0, ipa.RegRxHpsClientsMaxDepth0},
	}
	if rev.HW() <= ipa.HWv3_1 {
		regs = append(regs, [2]ipa.Register{ipa.RegRxHpsClientsMinDepth1, ipa.RegRxHpsClientsMaxDepth1})
	}
	var actions []action.Action
	for i, pair := range regs {
		lo := i * 4
		if lo >= len(cells) {
			break
		}
		var minDepth, maxDepth ipa.RxHpsDepthFields
		for j := 0; j < 4 && lo+j < len(cells); j++ {
			minDepth.Clients[j] = cells[lo+j].Min
			maxDepth.Clients[j] = cells[lo+j].Max
		}
		actions = append(actions,
			action.WriteGlobal(pair[0], minDepth),
			action.WriteGlobal(pair[1], maxDepth),
		)
	}
	return actions
}
