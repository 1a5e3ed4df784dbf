package routing

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"wirepath/core"
)

const (
	indexMinChildren = 4
	indexMaxChildren = 16
)

// indexEntry is an obstacle's bounding box as stored in the R-tree.
type indexEntry struct {
	seq  int
	rect rtreego.Rect
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// obstacleIndex is the broad phase of the blocker search. It narrows the
// obstacles to those whose bounding box touches the candidate's and hands them
// back in draw order.
type obstacleIndex struct {
	tree *rtreego.Rtree
	pad  float64
}

func newObstacleIndex(pad float64) *obstacleIndex {
	return &obstacleIndex{
		tree: rtreego.NewTree(2, indexMinChildren, indexMaxChildren),
		pad:  pad,
	}
}

// rect converts bounds to an R-tree rectangle. Bounds are padded so that
// horizontal and vertical wires still have a positive extent on both axes.
func (x *obstacleIndex) rect(b core.Bounds) (rtreego.Rect, error) {
	b = b.Expand(x.pad)
	r, err := rtreego.NewRect(rtreego.Point{b.Min.X, b.Min.Y}, []float64{b.Width(), b.Height()})
	if err != nil {
		return rtreego.Rect{}, errors.Wrapf(err, "index bounds %v", b)
	}
	return r, nil
}

func (x *obstacleIndex) insert(o core.Obstacle) error {
	r, err := x.rect(o.Bounds())
	if err != nil {
		return err
	}
	x.tree.Insert(&indexEntry{seq: o.Seq, rect: r})
	return nil
}

// candidates returns the sequence numbers of obstacles whose bounds touch b,
// sorted ascending.
func (x *obstacleIndex) candidates(b core.Bounds) ([]int, error) {
	r, err := x.rect(b)
	if err != nil {
		return nil, err
	}
	hits := x.tree.SearchIntersect(r)
	seqs := make([]int, 0, len(hits))
	for _, h := range hits {
		seqs = append(seqs, h.(*indexEntry).seq)
	}
	sort.Ints(seqs)
	return seqs, nil
}
