package flatland

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// CellKey - coordinates of a cell in the plane's local (x, z) space
type CellKey struct {
	X, Z int
}

// Cell - holds the indices of the entries overlapping the cell
type Cell struct {
	indices []int
}

// SpatialGrid - uniform hashed grid over a plane, used to find the collectibles near the agent.
// Entries are indexed in the plane's local frame, so the grid stays valid when the plane's pose changes.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid - creates a grid with numCells buckets, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - inserts an entry in every cell its local bounds cover
func (sg *SpatialGrid) Insert(index int, min, max mgl64.Vec2) {
	minCell := sg.localToCell(min)
	maxCell := sg.localToCell(max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			cellIdx := sg.hashCell(CellKey{x, z})
			sg.cells[cellIdx].indices = append(sg.cells[cellIdx].indices, index)
		}
	}
}

// Remove - removes an entry from every cell its local bounds cover
func (sg *SpatialGrid) Remove(index int, min, max mgl64.Vec2) {
	minCell := sg.localToCell(min)
	maxCell := sg.localToCell(max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			cell := &sg.cells[sg.hashCell(CellKey{x, z})]
			n := 0
			for _, idx := range cell.indices {
				if idx != index {
					cell.indices[n] = idx
					n++
				}
			}
			cell.indices = cell.indices[:n]
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].indices = sg.cells[i].indices[:0]
	}
}

// Query - returns the sorted, deduplicated indices of entries whose cells overlap the bounds.
// Hash collisions may return extra candidates: callers run an exact test afterwards.
func (sg *SpatialGrid) Query(min, max mgl64.Vec2) []int {
	minCell := sg.localToCell(min)
	maxCell := sg.localToCell(max)

	seen := make(map[int]struct{})
	for x := minCell.X; x <= maxCell.X; x++ {
		for z := minCell.Z; z <= maxCell.Z; z++ {
			for _, idx := range sg.cells[sg.hashCell(CellKey{x, z})].indices {
				seen[idx] = struct{}{}
			}
		}
	}

	result := make([]int, 0, len(seen))
	for idx := range seen {
		result = append(result, idx)
	}
	sort.Ints(result)

	return result
}

// localToCell - converts a local position to cell coordinates
func (sg *SpatialGrid) localToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Z: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to a bucket index
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
