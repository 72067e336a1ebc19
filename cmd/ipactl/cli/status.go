package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/frobware/go-ipa/server/pb"
)

// StatusCmd queries a running daemon.
type StatusCmd struct {
	OutputFlags
	Remote  string        `name:"remote" short:"r" help:"Daemon address (unix:///path, /path or host:port). Defaults to the socket under --run-root."`
	Timeout time.Duration `name:"timeout" help:"Request timeout." default:"5s"`
}

// Run executes the status command.
func (c *StatusCmd) Run(cli *CLI) error {
	cl, err := cli.Client(c.Remote)
	if err != nil {
		return err
	}
	defer cl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	st, err := cl.Status(ctx)
	if err != nil {
		return err
	}
	if c.json() {
		return writeJSON(cli.out(), st)
	}
	return formatStatus(cli, st)
}

func formatStatus(cli *CLI, st pb.Status) error {
	w := cli.out()
	fmt.Fprintf(w, "revision:       %s (hw %s, %s)\n", st.Revision, st.HWType, st.Mode)
	fmt.Fprintf(w, "session:        %s\n", st.Session)
	fmt.Fprintf(w, "attached:       %s\n", st.AttachedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "active clients: %d\n", st.ActiveClients)
	if len(st.Endpoints) == 0 {
		_, err := fmt.Fprintln(w, "no endpoints")
		return err
	}
	fmt.Fprintln(w)

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "HANDLE\tCLIENT\tCHANNEL\tSTATE\tSUSPENDED\tKEEP-AWAKE")
	for _, ep := range st.Endpoints {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%t\t%t\n",
			ep.Handle, ep.Client, ep.Channel, ep.State, ep.Suspended, ep.KeepAwake)
	}
	return tw.Flush()
}
