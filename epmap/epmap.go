package epmap

import (
	"errors"
	"fmt"

	"github.com/frobware/go-ipa"
)

// maxPipes bounds pipe and channel indices across every revision. The
// reverse indexes are sized by it.
const maxPipes = 32

var numPipes = [ipa.RevisionMax]int{
	ipa.Rev3_0:          23,
	ipa.Rev3_5:          20,
	ipa.Rev3_5_MHI:      20,
	ipa.Rev3_5_1:        20,
	ipa.Rev4_0:          23,
	ipa.Rev4_0_MHI:      23,
	ipa.Rev4_1:          23,
	ipa.Rev4_1_APQ:      23,
	ipa.Rev4_2:          13,
	ipa.Rev4_5:          28,
	ipa.Rev4_5_MHI:      28,
	ipa.Rev4_5_APQ:      28,
	ipa.Rev4_5_AUTO:     28,
	ipa.Rev4_5_AUTO_MHI: 28,
	ipa.Rev4_7:          23,
	ipa.Rev4_9:          25,
	ipa.Rev4_11:         16,
	ipa.Rev5_0:          31,
	ipa.Rev5_0_MHI:      31,
	ipa.Rev5_1:          31,
	ipa.Rev5_1_APQ:      31,
	ipa.Rev5_2:          20,
	ipa.Rev5_5:          31,
	ipa.Rev5_5_XR:       31,
}

var authored = [ipa.RevisionMax]row{
	ipa.Rev3_0:          rev3_0,
	ipa.Rev3_5:          rev3_5,
	ipa.Rev3_5_MHI:      rev3_5MHI,
	ipa.Rev3_5_1:        rev3_5_1,
	ipa.Rev4_0:          rev4_0,
	ipa.Rev4_0_MHI:      rev4_0MHI,
	ipa.Rev4_1:          rev4_1,
	ipa.Rev4_1_APQ:      rev4_1APQ,
	ipa.Rev4_2:          rev4_2,
	ipa.Rev4_5:          rev4_5,
	ipa.Rev4_5_MHI:      rev4_5MHI,
	ipa.Rev4_5_APQ:      rev4_5APQ,
	ipa.Rev4_5_AUTO:     rev4_5AUTO,
	ipa.Rev4_5_AUTO_MHI: rev4_5AUTOMHI,
	ipa.Rev4_7:          rev4_7,
	ipa.Rev4_9:          rev4_9,
	ipa.Rev4_11:         rev4_11,
	ipa.Rev5_0:          rev5_0,
	ipa.Rev5_0_MHI:      rev5_0MHI,
	ipa.Rev5_1:          rev5_1,
	ipa.Rev5_1_APQ:      rev5_1APQ,
	ipa.Rev5_2:          rev5_2,
	ipa.Rev5_5:          rev5_5,
	ipa.Rev5_5_XR:       rev5_5XR,
}

// cells is the dense revision x client table. Unlisted cells are the
// zero Entry, which is invalid.
var cells = func() *[ipa.RevisionMax][ipa.ClientMax]Entry {
	var t [ipa.RevisionMax][ipa.ClientMax]Entry
	for rev, r := range authored {
		for c, e := range r {
			t[rev][c] = e
		}
	}
	return &t
}()

// Lookup returns the raw table cell for (rev, c). It never panics;
// out-of-range inputs report false.
func Lookup(rev ipa.Revision, c ipa.Client) (Entry, bool) {
	if !rev.Valid() || !c.Valid() {
		return Entry{}, false
	}
	e := cells[rev][c]
	return e, e.Valid
}

// NumPipes returns the pipe count of rev, or 0 for an invalid
// revision.
func NumPipes(rev ipa.Revision) int {
	if !rev.Valid() {
		return 0
	}
	return numPipes[rev]
}

// Table is the read-only view of one revision's endpoint table with
// its reverse indexes. It is built once at attach and is safe for
// concurrent use.
type Table struct {
	rev      ipa.Revision
	numPipes int
	row      *[ipa.ClientMax]Entry
	byPipe   [maxPipes]ipa.Client
	byChan   [maxPipes]int
}

// New builds the table for rev and checks its structural
// invariants: pipes and AP channels are unique except where a test
// client aliases another client, producers carry a sequencer and
// consumers do not, and every pipe except DUMMY_CONS lies inside the
// revision's pipe count.
func New(rev ipa.Revision) (*Table, error) {
	if !rev.Valid() {
		return nil, fmt.Errorf("invalid revision %d", int(rev))
	}

	t := &Table{
		rev:      rev,
		numPipes: numPipes[rev],
		row:      &cells[rev],
	}
	for i := range t.byPipe {
		t.byPipe[i] = ipa.ClientMax
		t.byChan[i] = -1
	}

	var errs []error
	chanOwner := map[ipa.EE]map[int]ipa.Client{}

	claim := func(c ipa.Client, e Entry) {
		pipe, ch := e.GSI.Pipe, e.GSI.Channel
		if pipe < 0 || pipe >= maxPipes || ch < 0 || ch >= maxPipes {
			errs = append(errs, fmt.Errorf("%s: %s pipe %d channel %d out of range", rev, c, pipe, ch))
			return
		}
		if c != ipa.DummyCons && pipe >= t.numPipes {
			errs = append(errs, fmt.Errorf("%s: %s pipe %d exceeds pipe count %d", rev, c, pipe, t.numPipes))
		}
		if c.IsProd() && e.Seq == ipa.SeqInvalid {
			errs = append(errs, fmt.Errorf("%s: producer %s has no sequencer", rev, c))
		}
		if c.IsCons() && e.Seq != ipa.SeqInvalid {
			errs = append(errs, fmt.Errorf("%s: consumer %s has sequencer %s", rev, c, e.Seq))
		}

		if owner := t.byPipe[pipe]; owner != ipa.ClientMax {
			if !c.IsTest() {
				errs = append(errs, fmt.Errorf("%s: pipe %d used by both %s and %s", rev, pipe, owner, c))
			}
		} else {
			t.byPipe[pipe] = c
		}

		owners := chanOwner[e.GSI.EE]
		if owners == nil {
			owners = map[int]ipa.Client{}
			chanOwner[e.GSI.EE] = owners
		}
		if owner, ok := owners[ch]; ok {
			if !c.IsTest() {
				errs = append(errs, fmt.Errorf("%s: %s channel %d used by both %s and %s", rev, e.GSI.EE, ch, owner, c))
			}
		} else {
			owners[ch] = c
			if e.GSI.EE == ipa.EEAP {
				t.byChan[ch] = pipe
			}
		}
	}

	// Production clients claim pipes and channels first so the
	// reverse indexes never resolve to a test alias.
	for _, testPass := range []bool{false, true} {
		for c := ipa.Client(0); c < ipa.ClientMax; c++ {
			e := t.row[c]
			if !e.Valid || c.IsTest() != testPass {
				continue
			}
			if c.Reserved() {
				errs = append(errs, fmt.Errorf("%s: reserved client %d has an entry", rev, int(c)))
				continue
			}
			claim(c, e)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// MustNew is New for revisions known to be valid; it panics on error.
func MustNew(rev ipa.Revision) *Table {
	t, err := New(rev)
	if err != nil {
		panic(err)
	}
	return t
}

// ValidateAll builds the table of every revision and returns the
// joined errors.
func ValidateAll() error {
	var errs []error
	for _, rev := range ipa.Revisions() {
		if _, err := New(rev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Revision returns the revision the table was built for.
func (t *Table) Revision() ipa.Revision {
	return t.rev
}

// NumPipes returns the pipe count of the revision.
func (t *Table) NumPipes() int {
	return t.numPipes
}

// Clients returns every client with a valid entry, in enumeration
// order.
func (t *Table) Clients() []ipa.Client {
	var out []ipa.Client
	for c := ipa.Client(0); c < ipa.ClientMax; c++ {
		if t.row[c].Valid {
			out = append(out, c)
		}
	}
	return out
}

// Entry returns the cell for c.
func (t *Table) Entry(c ipa.Client) (Entry, error) {
	if !c.Valid() || !t.row[c].Valid {
		return Entry{}, ipa.ErrNotAllocated{Client: c, Revision: t.rev}
	}
	return t.row[c], nil
}

// Mapped reports whether c has an endpoint on this revision.
func (t *Table) Mapped(c ipa.Client) bool {
	_, err := t.PipeIndexFor(c)
	return err == nil
}

// PipeIndexFor returns the pipe of c. DUMMY_CONS is exempt from the
// pipe-count check.
func (t *Table) PipeIndexFor(c ipa.Client) (int, error) {
	e, err := t.Entry(c)
	if err != nil {
		return -1, err
	}
	if c != ipa.DummyCons && e.GSI.Pipe >= t.numPipes {
		return -1, ipa.ErrPipeOutOfRange{Client: c, Pipe: e.GSI.Pipe, NumPipes: t.numPipes}
	}
	return e.GSI.Pipe, nil
}

// ClientForPipe returns the client owning pipe, preferring production
// clients over test aliases. It returns ipa.ClientMax when no client
// maps to pipe.
func (t *Table) ClientForPipe(pipe int) ipa.Client {
	if pipe < 0 || pipe >= maxPipes {
		return ipa.ClientMax
	}
	return t.byPipe[pipe]
}

// ResourceGroup returns the resource group of c.
func (t *Table) ResourceGroup(c ipa.Client) (ipa.ResourceGroup, error) {
	e, err := t.Entry(c)
	if err != nil {
		return 0, err
	}
	return e.Group, nil
}

// BusMaster returns the bus master selection of c.
func (t *Table) BusMaster(c ipa.Client) (ipa.BusMaster, error) {
	e, err := t.Entry(c)
	if err != nil {
		return 0, err
	}
	return e.QMB, nil
}

// TxInstance returns the TX instance of c.
func (t *Table) TxInstance(c ipa.Client) (ipa.TxInstance, error) {
	e, err := t.Entry(c)
	if err != nil {
		return ipa.TxNA, err
	}
	return e.Tx, nil
}

// SupportsFiltering reports whether c supports filtering.
func (t *Table) SupportsFiltering(c ipa.Client) (bool, error) {
	e, err := t.Entry(c)
	if err != nil {
		return false, err
	}
	return e.SupportFlt, nil
}

// SequencerType returns the default sequencer of c.
func (t *Table) SequencerType(c ipa.Client) (ipa.SeqType, error) {
	e, err := t.Entry(c)
	if err != nil {
		return ipa.SeqInvalid, err
	}
	return e.Seq, nil
}

// GSIInfo returns the GSI attachment of c.
func (t *Table) GSIInfo(c ipa.Client) (GSIInfo, error) {
	e, err := t.Entry(c)
	if err != nil {
		return GSIInfo{}, err
	}
	return e.GSI, nil
}

// GSIChannelFor returns the GSI channel of c.
func (t *Table) GSIChannelFor(c ipa.Client) (int, error) {
	e, err := t.Entry(c)
	if err != nil {
		return -1, err
	}
	return e.GSI.Channel, nil
}

// PipeFromGSIChannel returns the pipe of the AP-owned endpoint using
// channel ch. Q6 and uC channels are not considered.
func (t *Table) PipeFromGSIChannel(ch int) (int, error) {
	if ch < 0 || ch >= maxPipes || t.byChan[ch] < 0 {
		return -1, ipa.ErrChannelNotMapped{Channel: ch}
	}
	return t.byChan[ch], nil
}

// APChannels returns every mapped AP channel in ascending order.
func (t *Table) APChannels() []int {
	var out []int
	for ch, pipe := range t.byChan {
		if pipe >= 0 {
			out = append(out, ch)
		}
	}
	return out
}
