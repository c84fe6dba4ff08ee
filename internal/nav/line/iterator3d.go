package line

// Iterator3D steps through voxel cells along a 3D line from start to
// end, one dominant-axis increment per call. The voxel planner restricts
// it to a single Z plane for its same-level direct-path check.
type Iterator3D struct {
	curX, curY, curZ int
	tgtX, tgtY, tgtZ int
	dX, dY, dZ       int
	stepX, stepY, stepZ int
	errA, errB       int
	dominant         int // 0=X, 1=Y, 2=Z
	started          bool
}

// NewIterator3D creates a 3D Bresenham iterator over voxel coordinates.
func NewIterator3D(sx, sy, sz, ex, ey, ez int) *Iterator3D {
	it := &Iterator3D{
		curX: sx, curY: sy, curZ: sz,
		tgtX: ex, tgtY: ey, tgtZ: ez,
		dX: abs(ex - sx), dY: abs(ey - sy), dZ: abs(ez - sz),
		stepX: sign(ex - sx), stepY: sign(ey - sy), stepZ: sign(ez - sz),
	}

	switch {
	case it.dX >= it.dY && it.dX >= it.dZ:
		it.dominant = 0
		it.errA = it.dX / 2
		it.errB = it.dX / 2
	case it.dY >= it.dX && it.dY >= it.dZ:
		it.dominant = 1
		it.errA = it.dY / 2
		it.errB = it.dY / 2
	default:
		it.dominant = 2
		it.errA = it.dZ / 2
		it.errB = it.dZ / 2
	}

	return it
}

// Next advances to the next cell. The first call yields the start cell;
// Next returns false once the target has been consumed.
func (it *Iterator3D) Next() bool {
	if !it.started {
		it.started = true
		return true
	}

	if it.curX == it.tgtX && it.curY == it.tgtY && it.curZ == it.tgtZ {
		return false
	}

	switch it.dominant {
	case 0:
		it.curX += it.stepX
		it.errA += it.dY
		if it.errA >= it.dX {
			it.curY += it.stepY
			it.errA -= it.dX
		}
		it.errB += it.dZ
		if it.errB >= it.dX {
			it.curZ += it.stepZ
			it.errB -= it.dX
		}

	case 1:
		it.curY += it.stepY
		it.errA += it.dX
		if it.errA >= it.dY {
			it.curX += it.stepX
			it.errA -= it.dY
		}
		it.errB += it.dZ
		if it.errB >= it.dY {
			it.curZ += it.stepZ
			it.errB -= it.dY
		}

	case 2:
		it.curZ += it.stepZ
		it.errA += it.dX
		if it.errA >= it.dZ {
			it.curX += it.stepX
			it.errA -= it.dZ
		}
		it.errB += it.dY
		if it.errB >= it.dZ {
			it.curY += it.stepY
			it.errB -= it.dZ
		}
	}

	return true
}

// X returns the current X position.
func (it *Iterator3D) X() int { return it.curX }

// Y returns the current Y position.
func (it *Iterator3D) Y() int { return it.curY }

// Z returns the current Z position.
func (it *Iterator3D) Z() int { return it.curZ }

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
