package rsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
)

func writes(t *testing.T, actions []action.Action) []action.WriteRegister {
	t.Helper()
	out := make([]action.WriteRegister, 0, len(actions))
	for _, a := range actions {
		w, ok := a.(action.WriteRegister)
		require.True(t, ok, "unexpected action %T", a)
		out = append(out, w)
	}
	return out
}

func find(ws []action.WriteRegister, reg ipa.Register, index int) (action.WriteRegister, bool) {
	for _, w := range ws {
		if w.Reg == reg && w.Index == index {
			return w, true
		}
	}
	return action.WriteRegister{}, false
}

func TestValidateAll(t *testing.T) {
	require.NoError(t, ValidateAll())
}

func TestValidate_InvalidRevision(t *testing.T) {
	assert.Error(t, Validate(ipa.RevisionMax))
}

func TestMinimumsFitTotals(t *testing.T) {
	for _, rev := range ipa.Revisions() {
		layout, ok := LayoutFor(rev)
		require.True(t, ok, rev.String())
		for _, cat := range layout.Categories() {
			var sum uint32
			for g := 0; g < layout.Groups(cat); g++ {
				lim, err := LimitFor(rev, cat, ipa.ResourceGroup(g))
				require.NoError(t, err)
				assert.LessOrEqual(t, lim.Min, lim.Max, "%s %s group %d", rev, cat, g)
				sum += lim.Min
			}
			assert.LessOrEqual(t, sum, Total(cat), "%s %s", rev, cat)
		}
	}
}

func TestLimitFor(t *testing.T) {
	lim, err := LimitFor(ipa.Rev4_5, SrcDescriptorBuff, ipa.Group45ULDL)
	require.NoError(t, err)
	assert.Equal(t, Limit{Min: 12, Max: 12}, lim)

	lim, err = LimitFor(ipa.Rev3_0, SrcDescriptorLists, ipa.Group30DL)
	require.NoError(t, err)
	assert.Equal(t, Limit{Min: 16, Max: 16}, lim)

	_, err = LimitFor(ipa.Rev4_5, DstUlsoSegments, 0)
	assert.Error(t, err, "ULSO segments are 5.x only")

	_, err = LimitFor(ipa.Rev4_2, SrcPktContexts, 1)
	assert.Error(t, err)

	_, err = LimitFor(ipa.Revision(-1), SrcPktContexts, 0)
	assert.Error(t, err)
}

func TestRxHpsWeight(t *testing.T) {
	tests := []struct {
		rev  ipa.Revision
		want bool
	}{
		{ipa.Rev3_0, false},
		{ipa.Rev3_5, true},
		{ipa.Rev3_5_1, true},
		{ipa.Rev4_0_MHI, true},
		{ipa.Rev4_1_APQ, true},
		{ipa.Rev4_2, true},
		{ipa.Rev4_5, false},
		{ipa.Rev4_7, false},
		{ipa.Rev5_5_XR, false},
	}
	for _, tt := range tests {
		t.Run(tt.rev.String(), func(t *testing.T) {
			w, ok := RxHpsWeight(tt.rev)
			assert.Equal(t, tt.want, ok)
			if !ok {
				assert.Equal(t, [4]uint32{}, w)
			}
		})
	}
}

func TestProgram_4_5(t *testing.T) {
	actions, err := Program(ipa.Rev4_5, ipa.HWModeNormal)
	require.NoError(t, err)
	ws := writes(t, actions)

	// 5 source categories and 2 destination categories over 3
	// register pairs each; no RX HPS depths or weights.
	assert.Len(t, ws, 21)

	w, ok := find(ws, ipa.RegSrcRsrcGrp01, 2)
	require.True(t, ok)
	assert.Equal(t, ipa.RsrcGrpFields{XMin: 12, XMax: 12, YMin: 12, YMax: 12}, w.Fields)

	w, ok = find(ws, ipa.RegSrcRsrcGrp45, 4)
	require.True(t, ok)
	assert.Equal(t, ipa.RsrcGrpFields{}, w.Fields)

	_, ok = find(ws, ipa.RegRxHpsClientsMinDepth0, ipa.NoIndex)
	assert.False(t, ok)
	_, ok = find(ws, ipa.RegSrcRsrcGrp67, 0)
	assert.False(t, ok)
}

func TestProgram_3_0WritesRxHpsDepths(t *testing.T) {
	actions, err := Program(ipa.Rev3_0, ipa.HWModeNormal)
	require.NoError(t, err)
	ws := writes(t, actions)
	assert.Len(t, ws, 8*3+3*3+2)

	w, ok := find(ws, ipa.RegRxHpsClientsMinDepth0, ipa.NoIndex)
	require.True(t, ok)
	assert.Equal(t, ipa.RxHpsDepthFields{Clients: [4]uint32{16, 24, 8, 8}}, w.Fields)

	_, ok = find(ws, ipa.RegRxHpsClientsMinDepth1, ipa.NoIndex)
	assert.False(t, ok)
	_, ok = find(ws, ipa.RegHpsFtchArbQueueWeight, ipa.NoIndex)
	assert.False(t, ok)
}

func TestProgram_4_0Emulation(t *testing.T) {
	actions, err := Program(ipa.Rev4_0, ipa.HWModeEmulation)
	require.NoError(t, err)
	ws := writes(t, actions)
	assert.Len(t, ws, 5*2+2*2+2+1)

	w, ok := find(ws, ipa.RegDstRsrcGrp23, 0)
	require.True(t, ok)
	assert.Equal(t, ipa.RsrcGrpFields{XMin: 3, XMax: 3}, w.Fields)

	w, ok = find(ws, ipa.RegHpsFtchArbQueueWeight, ipa.NoIndex)
	require.True(t, ok)
	assert.Equal(t, ipa.HpsWeightFields{Weights: [4]uint32{2, 4, 1, 1}}, w.Fields)
}

func TestProgram_4_0NormalSkipsRxHps(t *testing.T) {
	actions, err := Program(ipa.Rev4_0, ipa.HWModeNormal)
	require.NoError(t, err)
	ws := writes(t, actions)
	_, ok := find(ws, ipa.RegRxHpsClientsMaxDepth0, ipa.NoIndex)
	assert.False(t, ok)
}

func TestProgram_5_0UsesFourthDestinationRegister(t *testing.T) {
	actions, err := Program(ipa.Rev5_0, ipa.HWModeVirtual)
	require.NoError(t, err)
	ws := writes(t, actions)
	assert.Len(t, ws, 5*3+3*4+2)

	w, ok := find(ws, ipa.RegDstRsrcGrp67, 0)
	require.True(t, ok)
	assert.Equal(t, ipa.RsrcGrpFields{XMin: 39, XMax: 39}, w.Fields)

	_, ok = find(ws, ipa.RegRxHpsClientsMinDepth0, ipa.NoIndex)
	assert.True(t, ok)
}

// Only hardware up to 3.1 has the second RX HPS depth pair, even when
// the family reserves more than four groups.
func TestProgram_5_0EmulationSkipsSecondRxHpsPair(t *testing.T) {
	actions, err := Program(ipa.Rev5_0, ipa.HWModeEmulation)
	require.NoError(t, err)
	ws := writes(t, actions)

	_, ok := find(ws, ipa.RegRxHpsClientsMinDepth1, ipa.NoIndex)
	assert.False(t, ok)
	_, ok = find(ws, ipa.RegRxHpsClientsMaxDepth1, ipa.NoIndex)
	assert.False(t, ok)
}

func TestProgramIsDeterministic(t *testing.T) {
	for _, rev := range ipa.Revisions() {
		a, err := Program(rev, ipa.HWModeEmulation)
		require.NoError(t, err)
		b, err := Program(rev, ipa.HWModeEmulation)
		require.NoError(t, err)
		assert.Equal(t, a, b, rev.String())
	}
}

func TestCheckRouting(t *testing.T) {
	errs := checkRouting(ipa.Rev4_5, "source", []RegPair{
		{ipa.RegSrcRsrcGrp01, 0, 0},
		{ipa.RegSrcRsrcGrp23, 3, -1},
	}, 3)
	// group 0 twice, group 3 out of range, groups 1 and 2 unrouted
	assert.Len(t, errs, 4)
}
