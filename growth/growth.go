// Package growth implements the differential growth engine: it iteratively
// relaxes a closed planar curve under short-range repulsion with toroidal
// (9-tile mirrored) wrap-around and repeller-driven density modulation,
// inserting midpoints to keep edges near a locally-targeted length.
package growth

import (
	"sort"

	"github.com/condor86/CurveGrowthSystem/geom"
	"github.com/condor86/CurveGrowthSystem/kdtree"
)

// sameDistEps is the same-point rejection tolerance for the repulsion force
// (spec §5, 1e-3).
const sameDistEps = 1e-3

// Repellers is the unordered set of repeller positions paired with a
// clamped-fallback factor sequence (spec §3 "Repeller set").
type Repellers struct {
	Positions []geom.Vec3
	Factors   []float64
}

// factorFor returns F[min(i, len(Factors)-1)], or the neutral factor 1.0 if
// no factors were supplied at all.
func (r Repellers) factorFor(i int) float64 {
	if len(r.Factors) == 0 {
		return 1.0
	}
	if i >= len(r.Factors) {
		i = len(r.Factors) - 1
	}
	return r.Factors[i]
}

// Params holds the engine's tunable parameters. TileWidth/TileHeight define
// the toroidal domain period; MaxFactor/MaxEffectDist shape the density
// field; Closed selects whether the edge list wraps n-1 -> 0 for the
// insertion pass.
type Params struct {
	MaxPoints     int
	MaxIters      int
	BaseDist      float64
	TileWidth     float64
	TileHeight    float64
	MaxFactor     float64
	MaxEffectDist float64
	Closed        bool
}

// DefaultParams returns the evaluator's standard growth parameters (spec §4.6
// and §6): maxPoints=200, maxIters=200, baseDist=75, on a 1000x1000 tile,
// closed topology.
func DefaultParams() Params {
	return Params{
		MaxPoints:     200,
		MaxIters:      200,
		BaseDist:      75,
		TileWidth:     1000,
		TileHeight:    1000,
		MaxFactor:     1.5,
		MaxEffectDist: 300,
		Closed:        true,
	}
}

// density returns the per-point spacing multiplier (spec §4.1). It is
// always >= 1, and exactly 1 when there are no repellers.
func density(p geom.Vec3, rep Repellers, params Params) float64 {
	best := 1.0
	for i, r := range rep.Positions {
		d := p.Dist(r)
		if d > params.MaxEffectDist {
			continue
		}
		f := rep.factorFor(i)
		val := 1 + (params.MaxFactor-1)*f*(1-d/params.MaxEffectDist)
		if val > best {
			best = val
		}
	}
	return best
}

// Grow runs up to params.MaxIters growth iterations on a copy of initial and
// returns the resulting curve. It never mutates initial.
func Grow(initial []geom.Vec3, rep Repellers, params Params) []geom.Vec3 {
	c := make([]geom.Vec3, len(initial))
	copy(c, initial)

	for iter := 0; iter < params.MaxIters; iter++ {
		if len(c) >= params.MaxPoints {
			break
		}
		c = iterate(c, rep, params)
	}
	return c
}

// iterate performs one repulsion-then-insertion pass (spec §4.1 steps 2-5).
func iterate(c []geom.Vec3, rep Repellers, params Params) []geom.Vec3 {
	n := len(c)
	mirrorX, mirrorY, origOf := buildMirrors(c, params.TileWidth, params.TileHeight)

	mirrorValues := make([]int, len(mirrorX))
	for i := range mirrorValues {
		mirrorValues[i] = i
	}
	tree := kdtree.Build(mirrorX, mirrorY, mirrorValues)

	totalMove := make([]geom.Vec3, n)
	collisions := make([]int, n)
	searchRadius := params.BaseDist * params.MaxFactor

	var hits []int
	for i := 0; i < n; i++ {
		hits = tree.RadialSearch(c[i].X, c[i].Y, searchRadius, hits)
		for _, mIdx := range hits {
			j := origOf[mIdx]
			if j == i {
				continue
			}

			mirrored := geom.Vec3{X: mirrorX[mIdx], Y: mirrorY[mIdx], Z: c[j].Z}
			delta := c[i].Sub(mirrored)
			d := delta.Len()
			if d < sameDistEps {
				continue
			}

			localDist := 0.5 * params.BaseDist * (density(c[i], rep, params) + density(c[j], rep, params))
			if d > localDist {
				continue
			}

			push := min(0.5*(localDist-d), 0.5*params.BaseDist)
			move := delta.Scale(push / d)

			totalMove[i] = totalMove[i].Add(move)
			totalMove[j] = totalMove[j].Sub(move)
			collisions[i]++
			collisions[j]++
		}
	}

	for i := 0; i < n; i++ {
		if collisions[i] > 0 {
			c[i] = c[i].Add(totalMove[i].Scale(1 / float64(collisions[i])))
		}
	}

	return insertionPass(c, rep, params)
}

// insertMark records a pending midpoint insertion at a target index.
type insertMark struct {
	at    int
	point geom.Vec3
}

// insertionPass adds a midpoint on every edge whose length exceeds the
// locally-targeted spacing, applying inserts in descending target-index
// order so earlier inserts don't perturb later indices (spec §4.1 step 5).
func insertionPass(c []geom.Vec3, rep Repellers, params Params) []geom.Vec3 {
	n := len(c)
	if n < 2 {
		return c
	}

	edgeCount := n - 1
	if params.Closed {
		edgeCount = n
	}

	var marks []insertMark
	for a := 0; a < edgeCount; a++ {
		b := (a + 1) % n
		threshold := 0.5*params.BaseDist*(density(c[a], rep, params)+density(c[b], rep, params)) - 1
		if c[a].Dist(c[b]) > threshold {
			mid := c[a].Add(c[b]).Scale(0.5)
			at := a + 1
			if b == 0 {
				at = n
			}
			marks = append(marks, insertMark{at: at, point: mid})
		}
	}

	sort.Slice(marks, func(i, j int) bool { return marks[i].at > marks[j].at })

	for _, m := range marks {
		if len(c) >= params.MaxPoints {
			break
		}
		c = insertAt(c, m.at, m.point)
	}
	return c
}

// insertAt inserts pt at index i, shifting later elements right.
func insertAt(c []geom.Vec3, i int, pt geom.Vec3) []geom.Vec3 {
	c = append(c, geom.Vec3{})
	copy(c[i+1:], c[i:])
	c[i] = pt
	return c
}
