package raster

import "github.com/condor86/CurveGrowthSystem/geom"

// projectToFloor projects p onto the z=0 floor plane along direction d
// (pointing from the sun toward the scene): p_out = p - (p.z/d.z)*d, with
// z forced to exactly 0. Callers must ensure |d.z| is not near zero.
func projectToFloor(p, d geom.Vec3) geom.Vec2 {
	t := p.Z / d.Z
	out := p.Sub(d.Scale(t))
	return geom.Vec2{X: out.X, Y: out.Y}
}

// pointInQuad implements the "same-side" test of spec §4.4: p is inside the
// quad (in projected floor coordinates) iff the four signed cross products
// across its directed edges all share a sign, treating zero as matching
// either sign. This is winding-order agnostic and degenerate (collinear or
// zero-area) quads simply fail or trivially pass without corrupting the
// shadow grid.
func pointInQuad(quad [4]geom.Vec2, p geom.Vec2) bool {
	allNonNeg := true
	allNonPos := true
	for k := 0; k < 4; k++ {
		a := quad[k]
		b := quad[(k+1)%4]
		edgeX, edgeY := b.X-a.X, b.Y-a.Y
		toX, toY := p.X-a.X, p.Y-a.Y
		cross := edgeX*toY - edgeY*toX
		if cross < 0 {
			allNonNeg = false
		}
		if cross > 0 {
			allNonPos = false
		}
	}
	return allNonNeg || allNonPos
}

// quadBounds returns the axis-aligned bounding box of the four quad points.
func quadBounds(quad [4]geom.Vec2) (minX, maxX, minY, maxY float64) {
	minX, maxX = quad[0].X, quad[0].X
	minY, maxY = quad[0].Y, quad[0].Y
	for _, p := range quad[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}
