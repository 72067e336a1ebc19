package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/epmap"
	"github.com/frobware/go-ipa/rsrc"
	"github.com/frobware/go-ipa/timer"
)

// OutputFlags selects the output format of table commands.
type OutputFlags struct {
	Output string `name:"output" short:"o" help:"Output format (table, json)." enum:"table,json" default:"table"`
}

func (f OutputFlags) json() bool {
	return f.Output == "json"
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RevisionsCmd lists known revisions.
type RevisionsCmd struct {
	OutputFlags
}

type revisionRow struct {
	Revision ipa.Revision `json:"revision"`
	HW       ipa.HWType   `json:"hw"`
	Pipes    int          `json:"pipes"`
}

// Run executes the revisions command.
func (c *RevisionsCmd) Run(cli *CLI) error {
	var rows []revisionRow
	for _, rev := range ipa.Revisions() {
		rows = append(rows, revisionRow{Revision: rev, HW: rev.HW(), Pipes: epmap.NumPipes(rev)})
	}
	if c.json() {
		return writeJSON(cli.out(), rows)
	}
	tw := newTabWriter(cli.out())
	fmt.Fprintln(tw, "REVISION\tHW\tPIPES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Revision, r.HW, r.Pipes)
	}
	return tw.Flush()
}

// MapCmd dumps the endpoint table of a revision.
type MapCmd struct {
	OutputFlags
	Revision ipa.Revision `name:"revision" help:"Hardware revision." default:"${default_revision}"`
	Client   string       `name:"client" help:"Only show this client (e.g. USB_PROD)."`
}

type mapRow struct {
	Client ipa.Client  `json:"client"`
	Entry  epmap.Entry `json:"entry"`
}

// Run executes the map command.
func (c *MapCmd) Run(cli *CLI) error {
	table, err := epmap.New(c.Revision)
	if err != nil {
		return err
	}
	clients := table.Clients()
	if c.Client != "" {
		client, err := ipa.ParseClient(c.Client)
		if err != nil {
			return err
		}
		if !table.Mapped(client) {
			return fmt.Errorf("%s is not mapped on %s", client, c.Revision)
		}
		clients = []ipa.Client{client}
	}

	rows := make([]mapRow, 0, len(clients))
	for _, client := range clients {
		e, err := table.Entry(client)
		if err != nil {
			return err
		}
		rows = append(rows, mapRow{Client: client, Entry: e})
	}
	if c.json() {
		return writeJSON(cli.out(), rows)
	}

	tw := newTabWriter(cli.out())
	fmt.Fprintln(tw, "CLIENT\tPIPE\tCHANNEL\tEE\tGROUP\tSEQ\tQMB\tTX\tFLT\tTLV\tAOS\tPREFETCH")
	for _, r := range rows {
		e := r.Entry
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\t%t\t%d\t%d\t%s\n",
			r.Client, e.GSI.Pipe, e.GSI.Channel, e.GSI.EE, e.Group, e.Seq, e.QMB, e.Tx,
			e.SupportFlt, e.GSI.TLV, e.GSI.AOS, e.GSI.Prefetch)
	}
	return tw.Flush()
}

// LimitsCmd dumps the resource group limits of a revision.
type LimitsCmd struct {
	OutputFlags
	Revision ipa.Revision `name:"revision" help:"Hardware revision." default:"${default_revision}"`
}

type limitRow struct {
	Category string     `json:"category"`
	Group    int        `json:"group"`
	Limit    rsrc.Limit `json:"limit"`
}

// Run executes the limits command. The validation verdict is printed
// after the table; an invalid table is an error.
func (c *LimitsCmd) Run(cli *CLI) error {
	layout, ok := rsrc.LayoutFor(c.Revision)
	if !ok {
		return fmt.Errorf("%s: no resource layout", c.Revision)
	}
	var rows []limitRow
	for _, cat := range layout.Categories() {
		for g := 0; g < layout.Groups(cat); g++ {
			lim, err := rsrc.LimitFor(c.Revision, cat, ipa.ResourceGroup(g))
			if err != nil {
				return err
			}
			rows = append(rows, limitRow{Category: cat.String(), Group: g, Limit: lim})
		}
	}
	verr := rsrc.Validate(c.Revision)

	if c.json() {
		if err := writeJSON(cli.out(), rows); err != nil {
			return err
		}
		return verr
	}
	tw := newTabWriter(cli.out())
	fmt.Fprintln(tw, "CATEGORY\tGROUP\tMIN\tMAX")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", r.Category, r.Group, r.Limit.Min, r.Limit.Max)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if verr != nil {
		return verr
	}
	_, err := fmt.Fprintf(cli.out(), "%s: limits valid\n", c.Revision)
	return err
}

// QuantizeCmd encodes a timer value.
type QuantizeCmd struct {
	Revision ipa.Revision `name:"revision" help:"Hardware revision." required:""`
	Micros   uint32       `arg:"" name:"usec" help:"Timer value in microseconds."`
}

// Run executes the quantize command.
func (c *QuantizeCmd) Run(cli *CLI) error {
	f, err := timer.Encode(c.Revision, c.Micros)
	if err != nil {
		return err
	}
	w := cli.out()
	if c.Micros == 0 {
		_, err = fmt.Fprintf(w, "0us on %s: disabled\n", c.Revision)
		return err
	}
	if f.Legacy {
		_, err = fmt.Fprintf(w, "%dus on %s: legacy value %d\n", c.Micros, c.Revision, f.Value)
		return err
	}
	gens := timer.ConfigFor(c.Revision).Generators
	_, err = fmt.Fprintf(w, "%dus on %s: pulse generator %d (%s) x %d\n",
		c.Micros, c.Revision, f.PulseGen, gens[f.PulseGen], f.Scaled)
	return err
}

// ValidateCmd checks every revision's endpoint table and resource
// limits.
type ValidateCmd struct{}

// Run executes the validate command.
func (c *ValidateCmd) Run(cli *CLI) error {
	logger, err := cli.Logger()
	if err != nil {
		return err
	}
	if err := epmap.ValidateAll(); err != nil {
		return fmt.Errorf("endpoint tables: %w", err)
	}
	if err := rsrc.ValidateAll(); err != nil {
		return fmt.Errorf("resource limits: %w", err)
	}
	logger.Debug("validated", "revisions", len(ipa.Revisions()))
	_, err = fmt.Fprintf(cli.out(), "%d revisions valid\n", len(ipa.Revisions()))
	return err
}
