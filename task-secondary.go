package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cs-au-dk/absint/analysis/ir"
	"github.com/cs-au-dk/absint/utils/dot"
	"github.com/cs-au-dk/absint/utils/graph"

	log "github.com/sirupsen/logrus"
)

// secondaryTask executes the tasks that do not run an analysis.
func secondaryTask(funs []*ir.Function) error {
	switch {
	// cfg-to-dot : renders the control-flow graph of every entry function.
	case task.IsCfgToDot():
		for _, fun := range funs {
			var buf bytes.Buffer
			if err := cfgToDot(fun).WriteDot(&buf); err != nil {
				return err
			}

			name := opts.OutputName()
			if len(funs) > 1 {
				name += "_" + fun.Name
			}
			img, err := dot.DotToImage(name, opts.OutputFormat(), buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Println(img)
		}
	default:
		log.Warnf("Nothing to do for task %s", task.Name())
	}
	return nil
}

// cfgToDot draws one node per block reachable from the entry, with its
// instructions. The edges of
// conditional branches are labelled with their direction, and the blocks of
// each loop are grouped in a cluster.
func cfgToDot(fun *ir.Function) *dot.DotGraph {
	G := fun.Graph()
	scc := G.SCC([]ir.BlockID{fun.Entry().ID})

	dg := G.ToDotGraph(G.Reachable(fun.Entry().ID), &graph.VisualizationConfig[ir.BlockID]{
		NodeAttrs: func(b ir.BlockID) (string, dot.DotAttrs) {
			blk := fun.Block(b)
			var label strings.Builder
			fmt.Fprintf(&label, "%d: %s\n", blk.ID, blk.Comment)
			for _, id := range blk.Instrs {
				fmt.Fprintf(&label, "%s\n", fun.Value(id))
			}
			return fmt.Sprint(b), dot.DotAttrs{
				"shape": "box",
				"label": label.String(),
			}
		},
		EdgeAttrs: func(from ir.BlockID, i int, _ ir.BlockID) dot.DotAttrs {
			if fun.Value(fun.Block(from).Terminator()).Kind != ir.KindIf {
				return nil
			}
			if i == 0 {
				return dot.DotAttrs{"label": "T", "color": "darkgreen"}
			}
			return dot.DotAttrs{"label": "F", "color": "red"}
		},
		ClusterKey: func(b ir.BlockID) (any, bool) {
			comp := scc.ComponentOf(b)
			return comp, comp != -1 && scc.IsCyclic(comp)
		},
		ClusterAttrs: func(key any) (string, dot.DotAttrs) {
			return fmt.Sprint(key), dot.DotAttrs{
				"label": "loop",
				"color": "blue",
			}
		},
	})
	dg.Title = fun.Name
	return dg
}
