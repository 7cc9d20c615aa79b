package slither

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gonum.org/v1/gonum/mat"
)

// featureDim, hiddenDim and actionDim fix the network shape: a
// 20-dimensional observation, one 128-unit ReLU hidden layer, and a 3-way
// action head (straight / turn right / turn left). Training happens
// elsewhere; only this shape and the argmax-over-logits decision rule are
// implemented here.
const (
	featureDim = 20
	hiddenDim  = 128
	actionDim  = 3
)

// Policy is a feedforward 20->128->3 network, ReLU hidden activation, no
// output activation (argmax is taken over raw logits).
type Policy struct {
	w1, b1 *mat.Dense // hiddenDim x featureDim, hiddenDim x 1
	w2, b2 *mat.Dense // actionDim x hiddenDim, actionDim x 1
}

// PolicyWeights is the JSON document read by LoadWeights: a flat
// row-major dump of each layer's parameters.
type PolicyWeights struct {
	W1 []float64 `json:"w1"`
	B1 []float64 `json:"b1"`
	W2 []float64 `json:"w2"`
	B2 []float64 `json:"b2"`
}

// NewDefaultPolicy builds a deterministic policy from a seeded PRNG. With no
// trained weight file available, this gives bots a stable, reproducible
// (if unremarkable) decision function rather than panicking or going
// stdlib-random; callers that have real trained weights should follow up
// with LoadWeights.
func NewDefaultPolicy(seed int64) *Policy {
	rng := rand.New(rand.NewSource(seed))
	p := &Policy{
		w1: mat.NewDense(hiddenDim, featureDim, randSlice(rng, hiddenDim*featureDim, featureDim)),
		b1: mat.NewDense(hiddenDim, 1, make([]float64, hiddenDim)),
		w2: mat.NewDense(actionDim, hiddenDim, randSlice(rng, actionDim*hiddenDim, hiddenDim)),
		b2: mat.NewDense(actionDim, 1, make([]float64, actionDim)),
	}
	return p
}

// randSlice draws n values from a He-style normal distribution scaled by
// the fan-in, so the default policy's logits start in a sane range instead
// of saturating ReLU immediately.
func randSlice(rng *rand.Rand, n, fanIn int) []float64 {
	scale := math.Sqrt(2.0 / float64(fanIn))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * scale
	}
	return out
}

// LoadWeights reads a PolicyWeights JSON document from path and replaces
// the network's parameters in place.
func (p *Policy) LoadWeights(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load policy weights: %w", err)
	}
	defer f.Close()

	var w PolicyWeights
	if err := json.NewDecoder(f).Decode(&w); err != nil {
		return fmt.Errorf("decode policy weights: %w", err)
	}
	if len(w.W1) != hiddenDim*featureDim || len(w.B1) != hiddenDim ||
		len(w.W2) != actionDim*hiddenDim || len(w.B2) != actionDim {
		return fmt.Errorf("policy weights: dimension mismatch")
	}
	p.w1 = mat.NewDense(hiddenDim, featureDim, append([]float64(nil), w.W1...))
	p.b1 = mat.NewDense(hiddenDim, 1, append([]float64(nil), w.B1...))
	p.w2 = mat.NewDense(actionDim, hiddenDim, append([]float64(nil), w.W2...))
	p.b2 = mat.NewDense(actionDim, 1, append([]float64(nil), w.B2...))
	return nil
}

// relu applies the rectifier in place.
func relu(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v < 0 {
				m.Set(i, j, 0)
			}
		}
	}
}

// Decide runs the forward pass on a 20-dim feature vector and returns the
// argmax action: 0=straight, 1=turn right, 2=turn left.
func (p *Policy) Decide(features [20]float64) int {
	x := mat.NewDense(featureDim, 1, features[:])

	var h mat.Dense
	h.Mul(p.w1, x)
	h.Add(&h, p.b1)
	relu(&h)

	var out mat.Dense
	out.Mul(p.w2, &h)
	out.Add(&out, p.b2)

	best, bestVal := 0, math.Inf(-1)
	for i := 0; i < actionDim; i++ {
		if v := out.At(i, 0); v > bestVal {
			best, bestVal = i, v
		}
	}
	return best
}

// FeatureContext is the read-only view of room state the feature builder
// needs.
type FeatureContext struct {
	Head      Cell
	Direction Cell
	Occupied  map[Cell]struct{}
	Food      []Cell
	W, H      int
}

// BuildFeatures constructs the 20-dim observation vector. The layout is
// load-bearing: a trained weight file supplied via LoadWeights sees the
// input its training distribution expects:
//
//	[0:4]   danger-if-move body:  right, left, up, down
//	[4:8]   danger-if-move wall:  right, left, up, down
//	[8:12]  ray-cast body hit:    left, right, up, down
//	[12:16] current direction one-hot: left, right, up, down
//	[16:20] food bearing: left, right, up, down
func BuildFeatures(ctx FeatureContext) [20]float64 {
	var f [20]float64
	h := ctx.Head

	ptR := Cell{X: h.X + 1, Y: h.Y}
	ptL := Cell{X: h.X - 1, Y: h.Y}
	ptU := Cell{X: h.X, Y: h.Y - 1}
	ptD := Cell{X: h.X, Y: h.Y + 1}

	_, hitR := ctx.Occupied[ptR]
	_, hitL := ctx.Occupied[ptL]
	_, hitU := ctx.Occupied[ptU]
	_, hitD := ctx.Occupied[ptD]
	f[0], f[1], f[2], f[3] = b2f(hitR), b2f(hitL), b2f(hitU), b2f(hitD)

	f[4] = b2f(!ptR.InBounds(ctx.W, ctx.H))
	f[5] = b2f(!ptL.InBounds(ctx.W, ctx.H))
	f[6] = b2f(!ptU.InBounds(ctx.W, ctx.H))
	f[7] = b2f(!ptD.InBounds(ctx.W, ctx.H))

	f[8] = b2f(checkRay(ctx, h, Cell{X: -1, Y: 0}))
	f[9] = b2f(checkRay(ctx, h, Cell{X: 1, Y: 0}))
	f[10] = b2f(checkRay(ctx, h, Cell{X: 0, Y: -1}))
	f[11] = b2f(checkRay(ctx, h, Cell{X: 0, Y: 1}))

	f[12] = b2f(ctx.Direction == DirLeft)
	f[13] = b2f(ctx.Direction == DirRight)
	f[14] = b2f(ctx.Direction == DirUp)
	f[15] = b2f(ctx.Direction == DirDown)

	// With no food on the board the bearing is computed against (0,0),
	// matching the trained network's input distribution.
	fx, fy := closestFood(ctx.Food, h)
	f[16] = b2f(fx < h.X)
	f[17] = b2f(fx > h.X)
	f[18] = b2f(fy < h.Y)
	f[19] = b2f(fy > h.Y)
	return f
}

// checkRay scans every cell from head (exclusive) to the map edge along
// dir, reporting whether any occupied body cell lies along that ray.
func checkRay(ctx FeatureContext, head Cell, dir Cell) bool {
	c := head.Add(dir)
	for c.InBounds(ctx.W, ctx.H) {
		if _, ok := ctx.Occupied[c]; ok {
			return true
		}
		c = c.Add(dir)
	}
	return false
}

// closestFood finds the Manhattan-nearest food cell to head, or (0,0) when
// no food is on the board.
func closestFood(food []Cell, head Cell) (x, y int) {
	best := math.MaxInt64
	for _, c := range food {
		d := abs(c.X-head.X) + abs(c.Y-head.Y)
		if d < best {
			best, x, y = d, c.X, c.Y
		}
	}
	return
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
