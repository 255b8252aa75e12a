package gpunet

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Dump renders the router roster of a built network for diagnostics.
func (n *Network) Dump(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(n.name)
	t.AppendHeader(table.Row{"ID", "Name", "Subnet", "Layer", "Addr", "In", "Out"})

	for id, r := range n.routers {
		layer, addr, sub, err := n.desc.RouterPosition(id)
		if err != nil {
			continue
		}
		t.AppendRow(table.Row{
			id, r.Name(), sub.Name(), layer, addr,
			r.NumInputChannels(), r.NumOutputChannels(),
		})
	}

	t.Render()
}
