package growth

import "github.com/condor86/CurveGrowthSystem/geom"

// offsets enumerates the nine affine tile copies in a fixed order, so that
// mirror array index i*9+k always pairs original vertex i with offset k —
// giving the (orig(j), j mod 9) uniqueness spec §3 requires for free.
var offsets = [9]struct{ dx, dy float64 }{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// buildMirrors produces the nine affine copies of c's XY positions (spec §3
// "Mirrored point cloud"). origOf[j] is the index into c that mirror point j
// was copied from.
func buildMirrors(c []geom.Vec3, tileW, tileH float64) (mirrorX, mirrorY []float64, origOf []int) {
	n := len(c)
	mirrorX = make([]float64, n*9)
	mirrorY = make([]float64, n*9)
	origOf = make([]int, n*9)

	for i, p := range c {
		for k, off := range offsets {
			idx := i*9 + k
			mirrorX[idx] = p.X + off.dx*tileW
			mirrorY[idx] = p.Y + off.dy*tileH
			origOf[idx] = i
		}
	}
	return mirrorX, mirrorY, origOf
}
