package shell

// levelBase is where each level starts in a tree: 16 leaves, then 8, 4, 2
// and the root.
var levelBase = [Levels + 2]int{0, 16, 24, 28, 30, 31}

// tree holds every node of one block, leaves first.
type tree [31]int

func (t *tree) level(l int) []int {
	return t[levelBase[l]:levelBase[l+1]]
}

// build fills the internal levels from the leaves.
func (t *tree) build() {
	for l := 0; l < Levels; l++ {
		combinePulses(t.level(l+1), t.level(l))
	}
}

// splitStep identifies one split by its left child: node child at level is
// the left child of node child/2 at level+1, coded with Table(level).
type splitStep struct {
	level int
	child int
}

func (s splitStep) parentIndex() int {
	return levelBase[s.level+1] + s.child/2
}

func (s splitStep) childIndex() int {
	return levelBase[s.level] + s.child
}

// traversal is the bitstream order of the 15 splits: the root, then each
// half depth first, left before right, with the level-1 split of a quarter
// coded just before its two leaf splits.
var traversal = [FrameLength - 1]splitStep{
	{3, 0},
	{2, 0},
	{1, 0}, {0, 0}, {0, 2},
	{1, 2}, {0, 4}, {0, 6},
	{2, 2},
	{1, 4}, {0, 8}, {0, 10},
	{1, 6}, {0, 12}, {0, 14},
}
