package absint

import (
	"fmt"
	"io"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"

	log "github.com/sirupsen/logrus"
)

// Policy decides where an explored path stops.
type Policy[E L.Element[E]] interface {
	// Enter is consulted before visiting blk with the incoming state in.
	Enter(blk *ir.Block, in State[E], p Path[E]) bool
	// Leave is consulted after visiting a block with successors, and may
	// update the path metadata handed to them.
	Leave(blk *ir.Block, in, out State[E], p *Path[E]) bool
}

// Policies combines policies. A path continues while all of them agree.
type Policies[E L.Element[E]] []Policy[E]

func (ps Policies[E]) Enter(blk *ir.Block, in State[E], p Path[E]) bool {
	for _, policy := range ps {
		if !policy.Enter(blk, in, p) {
			return false
		}
	}
	return true
}

func (ps Policies[E]) Leave(blk *ir.Block, in, out State[E], p *Path[E]) bool {
	for _, policy := range ps {
		if !policy.Leave(blk, in, out, p) {
			return false
		}
	}
	return true
}

// PathBound cuts paths longer than the given number of blocks. A
// non-positive bound disables it.
type PathBound[E L.Element[E]] int

func (b PathBound[E]) Enter(blk *ir.Block, _ State[E], p Path[E]) bool {
	if b > 0 && p.Depth >= int(b) {
		log.Debugf("Block %d: cutting a path of %d blocks", blk.ID, p.Depth)
		return false
	}
	return true
}

func (PathBound[E]) Leave(*ir.Block, State[E], State[E], *Path[E]) bool {
	return true
}

// Repeat cuts a path after Limit consecutive visits that leave their block
// with the same state as the previous visit of the block on the path. The
// counter is reported on Out, when given. A visit that changes the state
// resets the counter, and the reset is only reported if the counter was
// positive: visits that keep changing the state print nothing.
type Repeat[E L.Element[E]] struct {
	Limit int
	Out   io.Writer
}

func (Repeat[E]) Enter(*ir.Block, State[E], Path[E]) bool {
	return true
}

func (r Repeat[E]) Leave(blk *ir.Block, _, out State[E], p *Path[E]) bool {
	if prev, found := p.Previous(blk.ID); !found || !prev.Eq(out) {
		if p.Repeats > 0 && r.Out != nil {
			fmt.Fprintln(r.Out, "<---------- Reset the counter of reaching the same fixed point ---------->")
		}
		p.Repeats = 0
		return true
	}

	p.Repeats++
	if r.Out != nil {
		fmt.Fprintf(r.Out, "<-------- Reached the fixed point %d time(s) -------->\n", p.Repeats)
	}
	if r.Limit > 0 && p.Repeats >= r.Limit {
		log.Debugf("Block %d: cutting a path after %d repeats with\n%s", blk.ID, p.Repeats, out)
		return false
	}
	return true
}

// SeenIncoming expands a block at most once per distinct incoming state.
type SeenIncoming[E L.Element[E]] struct {
	seen map[ir.BlockID][]State[E]
}

func NewSeenIncoming[E L.Element[E]]() *SeenIncoming[E] {
	return &SeenIncoming[E]{make(map[ir.BlockID][]State[E])}
}

func (p *SeenIncoming[E]) Enter(blk *ir.Block, in State[E], _ Path[E]) bool {
	for _, s := range p.seen[blk.ID] {
		if s.Eq(in) {
			return false
		}
	}
	p.seen[blk.ID] = append(p.seen[blk.ID], in)
	return true
}

func (*SeenIncoming[E]) Leave(*ir.Block, State[E], State[E], *Path[E]) bool {
	return true
}
