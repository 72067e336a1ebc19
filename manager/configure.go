package manager

import (
	"context"
	"fmt"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/action"
	"github.com/frobware/go-ipa/epmap"
	"github.com/frobware/go-ipa/timer"
)

// Configure applies the non-nil facets of cfg to an allocated
// endpoint. Nil facets keep their current snapshot.
func (m *Manager) Configure(ctx context.Context, handle int, cfg ipa.EndpointConfig) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}
	table, err := m.Table()
	if err != nil {
		return err
	}

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if err := ep.require("configure", ipa.StateActive, ipa.StateSuspended, ipa.StateStopped); err != nil {
		return err
	}
	actions, next, err := m.planConfigure(ctx, table, ep, cfg)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "configure")
	if err != nil {
		return err
	}
	defer release()

	if err := m.executor.ExecuteAll(ctx, actions); err != nil {
		return fmt.Errorf("configure endpoint %d: %w", handle, err)
	}
	ep.cfg = next
	m.logger.DebugContext(ctx, "configured endpoint", "client", ep.client, "pipe", handle, "writes", len(actions))
	return m.journal(ctx, ep)
}

// ConfigureHOLB sets head-of-line blocking drop on a consumer. The
// timer is quantized before any register is written.
func (m *Manager) ConfigureHOLB(ctx context.Context, handle int, holb ipa.HOLBConfig) error {
	ctx = ensureOpID(ctx)
	ep, err := m.lookup(handle)
	if err != nil {
		return err
	}
	if !ep.client.IsCons() {
		return ipa.ErrWrongDirection{Handle: handle, Client: ep.client, Facet: "holb"}
	}
	actions, err := holbActions(m.revision(), handle, holb)
	if err != nil {
		return err
	}

	release, err := m.power.Acquire(ctx, "configure-holb")
	if err != nil {
		return err
	}
	defer release()

	ep.mu.Lock()
	defer ep.mu.Unlock()

	if err := m.executor.ExecuteAll(ctx, actions); err != nil {
		return fmt.Errorf("configure holb on endpoint %d: %w", handle, err)
	}
	ep.cfg.HOLB = &holb
	return m.journal(ctx, ep)
}

type facet struct {
	name string
	set  bool
}

func producerFacets(cfg ipa.EndpointConfig) []facet {
	return []facet{
		{"nat", cfg.NAT != nil},
		{"conn track", cfg.ConnTrack != nil},
		{"mode", cfg.Mode != nil},
		{"seq", cfg.Seq != nil},
		{"route", cfg.Route != nil},
		{"deaggr", cfg.Deaggr != nil},
	}
}

func consumerFacets(cfg ipa.EndpointConfig) []facet {
	return []facet{
		{"metadata mask", cfg.MetadataMask != nil},
		{"holb", cfg.HOLB != nil},
	}
}

// planConfigure computes the register writes for cfg on ep and the
// resulting configuration snapshot. It reads ep without locking; the
// caller either holds ep.mu or has not yet published ep. Nothing is
// written.
//
// Facets are applied in hardware order: header, header extension,
// aggregation, cfg, ULSO, then for producers NAT, conn track, mode,
// seq, route and deaggr, and for consumers metadata mask, prod cfg
// and HOLB.
func (m *Manager) planConfigure(ctx context.Context, table *epmap.Table, ep *endpoint, cfg ipa.EndpointConfig) ([]action.Action, ipa.EndpointConfig, error) {
	rev := table.Revision()
	hw := rev.HW()
	pipe := ep.handle
	prod := ep.client.IsProd()

	wrong := consumerFacets(cfg)
	if !prod {
		wrong = producerFacets(cfg)
	}
	for _, f := range wrong {
		if f.set {
			return nil, ipa.EndpointConfig{}, ipa.ErrWrongDirection{Handle: pipe, Client: ep.client, Facet: f.name}
		}
	}

	// Quantize every timer before emitting anything.
	var aggrTime ipa.TimerFields
	if cfg.Aggr != nil {
		t, err := timer.Encode(rev, cfg.Aggr.TimeLimitUs)
		if err != nil {
			return nil, ipa.EndpointConfig{}, fmt.Errorf("aggregation time limit: %w", err)
		}
		aggrTime = t
	}
	var holb []action.Action
	if cfg.HOLB != nil {
		var err error
		if holb, err = holbActions(rev, pipe, *cfg.HOLB); err != nil {
			return nil, ipa.EndpointConfig{}, err
		}
	}

	if cfg.ULSO != nil && hw < ipa.HWv5_0 {
		m.logger.DebugContext(ctx, "ulso not present, skipping", "pipe", pipe, "revision", rev)
		cfg.ULSO = nil
	}
	if cfg.ConnTrack != nil && hw < ipa.HWv4_0 {
		m.logger.DebugContext(ctx, "conn track not present, skipping", "pipe", pipe, "revision", rev)
		cfg.ConnTrack = nil
	}

	var out []action.Action
	write := func(reg ipa.Register, fields any) {
		out = append(out, action.Write(reg, pipe, fields))
	}

	if cfg.Hdr != nil {
		write(ipa.RegEndpInitHdr, *cfg.Hdr)
	}
	if cfg.HdrExt != nil {
		write(ipa.RegEndpInitHdrExt, *cfg.HdrExt)
	}
	if cfg.Aggr != nil {
		write(ipa.RegEndpInitAggr, ipa.AggrFields{AggrConfig: *cfg.Aggr, Time: aggrTime})
	}
	if cfg.Cfg != nil {
		write(ipa.RegEndpInitCfg, ipa.CfgFields{CfgConfig: *cfg.Cfg, QMBMaster: ep.entry.QMB})
	}
	if cfg.ULSO != nil {
		write(ipa.RegEndpInitULSOCfg, *cfg.ULSO)
	}

	if prod {
		mode := ep.cfg.Mode
		if cfg.Mode != nil {
			mode = cfg.Mode
		}
		dma := mode != nil && mode.Mode == ipa.ModeDMA

		if cfg.NAT != nil {
			write(ipa.RegEndpInitNAT, *cfg.NAT)
		}
		if cfg.ConnTrack != nil {
			write(ipa.RegEndpInitConnTrack, *cfg.ConnTrack)
		}
		if cfg.Mode != nil {
			fields := ipa.ModeFields{Mode: cfg.Mode.Mode}
			if dma {
				dst, err := table.PipeIndexFor(cfg.Mode.Dst)
				if err != nil {
					return nil, ipa.EndpointConfig{}, fmt.Errorf("dma destination: %w", err)
				}
				fields.DstPipe = dst
			}
			write(ipa.RegEndpInitMode, fields)
		}
		if cfg.Seq != nil {
			if ep.client.IsTest() {
				m.logger.DebugContext(ctx, "test client, skipping sequencer", "client", ep.client)
			} else {
				seq := ep.entry.Seq
				if cfg.Seq.SetDynamic {
					seq = cfg.Seq.Type
				}
				if dma && seq != ipa.SeqInvalid && !seq.IsDMA() {
					panic(ipa.InvariantViolation{
						Msg: fmt.Sprintf("endpoint %d (%s) in DMA mode given non-DMA sequencer %s", pipe, ep.client, seq),
					})
				}
				if seq != ipa.SeqInvalid {
					write(ipa.RegEndpInitSeq, ipa.SeqFields{Type: seq})
				}
			}
		}
		if cfg.Route != nil {
			switch {
			case dma:
				m.logger.DebugContext(ctx, "dma mode, skipping route", "pipe", pipe)
			case hw >= ipa.HWv5_0:
				m.logger.DebugContext(ctx, "route register not present, skipping", "pipe", pipe, "revision", rev)
			default:
				write(ipa.RegEndpInitRoute, ipa.RouteFields{TableIndex: cfg.Route.TableIndex})
			}
		}
		if cfg.Deaggr != nil {
			write(ipa.RegEndpInitDeaggr, *cfg.Deaggr)
		}
	} else {
		if cfg.MetadataMask != nil {
			write(ipa.RegEndpInitHdrMetaMask, *cfg.MetadataMask)
		}
		if hw >= ipa.HWv5_5 {
			write(ipa.RegEndpInitProdCfg, ipa.ProdCfgFields{TxInstance: ep.entry.Tx})
		}
		out = append(out, holb...)
	}

	return out, ep.cfg.Merge(cfg), nil
}

// holbActions returns the HOLB writes for pipe. 4.5 and later need
// the enable register written twice.
func holbActions(rev ipa.Revision, pipe int, holb ipa.HOLBConfig) ([]action.Action, error) {
	t, err := timer.Encode(rev, holb.TimerUs)
	if err != nil {
		return nil, fmt.Errorf("holb timer: %w", err)
	}
	en := action.Write(ipa.RegEndpInitHOLBEn, pipe, ipa.HOLBEnFields{Enable: holb.Enable})
	out := []action.Action{en}
	if rev.HW() >= ipa.HWv4_5 {
		out = append(out, en)
	}
	return append(out, action.Write(ipa.RegEndpInitHOLBTimer, pipe, t)), nil
}
