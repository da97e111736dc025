package core

import (
	"math"
	"slices"

	"github.com/automoto/flipside/shared/gamemath"
	"github.com/automoto/flipside/tags"
	"github.com/solarlune/resolv"
)

const (
	cellSize    = 32
	spaceMargin = 512.0
)

// broadphase indexes obstacles and pushables in a resolv spatial hash. It
// only narrows candidates; every caller still runs an exact box test.
// Queries that reach outside the hashed area fall back to a linear scan.
//
// The hash covers the live geometry plus a margin and its origin sits at
// the live area's top-left corner, so an endless level that streams ahead
// and prunes behind keeps a hash the size of its window.
type broadphase struct {
	space  *resolv.Space
	bounds gamemath.Rect // world area the hash covers
	query  *resolv.Object

	obstacles []*Obstacle
	pushables []*Pushable
}

func newBroadphase(extent gamemath.Rect) *broadphase {
	b := &broadphase{}
	b.reset(extent)
	return b
}

// reset rebuilds the hash over extent grown by spaceMargin on every side,
// snapped to whole cells.
func (b *broadphase) reset(extent gamemath.Rect) {
	x := math.Floor((extent.X-spaceMargin)/cellSize) * cellSize
	y := math.Floor((extent.Y-spaceMargin)/cellSize) * cellSize
	cols := max(int(math.Ceil((extent.Right()+spaceMargin-x)/cellSize)), 1)
	rows := max(int(math.Ceil((extent.Bottom()+spaceMargin-y)/cellSize)), 1)
	b.space = resolv.NewSpace(cols*cellSize, rows*cellSize, cellSize, cellSize)
	b.bounds = gamemath.Rect{X: x, Y: y, W: float64(cols * cellSize), H: float64(rows * cellSize)}

	b.query = resolv.NewObject(0, 0, 1, 1, tags.ResolvQuery)
	b.space.Add(b.query)
	for _, o := range b.obstacles {
		b.place(o.obj, o.Rect)
		b.space.Add(o.obj)
	}
	for _, p := range b.pushables {
		b.place(p.obj, p.Rect)
		b.space.Add(p.obj)
	}
}

// place moves obj to r in hash coordinates.
func (b *broadphase) place(obj *resolv.Object, r gamemath.Rect) {
	obj.X, obj.Y = r.X-b.bounds.X, r.Y-b.bounds.Y
}

// live is the box around every indexed object, or ok=false when there are
// none.
func (b *broadphase) live() (ext gamemath.Rect, ok bool) {
	for _, o := range b.obstacles {
		ext, ok = unionOrFirst(ext, o.Rect, ok), true
	}
	for _, p := range b.pushables {
		ext, ok = unionOrFirst(ext, p.Rect, ok), true
	}
	return ext, ok
}

func unionOrFirst(acc, r gamemath.Rect, have bool) gamemath.Rect {
	if !have {
		return r
	}
	return acc.Union(r)
}

func (b *broadphase) covers(r gamemath.Rect) bool {
	return r.X >= b.bounds.X && r.Y >= b.bounds.Y &&
		r.Right() <= b.bounds.Right() && r.Bottom() <= b.bounds.Bottom()
}

func (b *broadphase) addObstacle(o *Obstacle) {
	o.obj = newObject(o.Rect, o, tags.ResolvObstacle, behaviors[o.Kind].Tag)
	b.grow(o.Rect)
	b.obstacles = append(b.obstacles, o)
	b.place(o.obj, o.Rect)
	b.space.Add(o.obj)
}

func (b *broadphase) addPushable(p *Pushable) {
	p.obj = newObject(p.Rect, p, tags.ResolvPushable)
	b.grow(p.Rect)
	b.pushables = append(b.pushables, p)
	b.place(p.obj, p.Rect)
	b.space.Add(p.obj)
}

// grow rebuilds the hash around the live geometry and r when r is not
// already covered. The margin is added once, from the live box, never on
// top of the previous bounds.
func (b *broadphase) grow(r gamemath.Rect) {
	if b.covers(r) {
		return
	}
	ext, ok := b.live()
	b.reset(unionOrFirst(ext, r, ok))
}

// fit shrinks the hash back to the live geometry.
func (b *broadphase) fit() {
	if ext, ok := b.live(); ok {
		b.reset(ext)
	}
}

// movePushable is the only writer of a pushable's box after load.
func (b *broadphase) movePushable(p *Pushable, r gamemath.Rect) {
	p.Rect = r
	if !b.covers(r) {
		b.fit()
		return
	}
	b.place(p.obj, r)
	p.obj.Update()
}

func (b *broadphase) removeObstacles(drop func(*Obstacle) bool) int {
	n := len(b.obstacles)
	b.obstacles = slices.DeleteFunc(b.obstacles, func(o *Obstacle) bool {
		if drop(o) {
			b.space.Remove(o.obj)
			return true
		}
		return false
	})
	return n - len(b.obstacles)
}

func (b *broadphase) removePushables(drop func(*Pushable) bool) int {
	n := len(b.pushables)
	b.pushables = slices.DeleteFunc(b.pushables, func(p *Pushable) bool {
		if drop(p) {
			b.space.Remove(p.obj)
			return true
		}
		return false
	})
	return n - len(b.pushables)
}

// queryRect pads r by a pixel on every side. resolv registers an object in
// the cells under [x, x+w-1], so a fractional overlap of less than a pixel
// would otherwise miss the neighbouring cell.
func queryRect(r gamemath.Rect) gamemath.Rect {
	return gamemath.Rect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}
}

// candidates returns the resolv objects whose cells touch r.
func (b *broadphase) candidates(r gamemath.Rect, tag string) []*resolv.Object {
	r = queryRect(r)
	b.place(b.query, r)
	b.query.W, b.query.H = r.W, r.H
	b.query.Update()
	check := b.query.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	return check.ObjectsByTags(tag)
}

// obstaclesIn returns obstacles overlapping r whose capabilities include
// mask, in ID order.
func (b *broadphase) obstaclesIn(r gamemath.Rect, mask Capability, keep func(*Obstacle) bool) []*Obstacle {
	var out []*Obstacle
	match := func(o *Obstacle) {
		if o.Kind.Caps().Has(mask) && o.Rect.Intersects(r) && (keep == nil || keep(o)) {
			out = append(out, o)
		}
	}

	if !b.covers(queryRect(r)) {
		for _, o := range b.obstacles {
			match(o)
		}
		return out
	}
	for _, obj := range b.candidates(r, tags.ResolvObstacle) {
		if o, ok := obj.Data.(*Obstacle); ok && !slices.Contains(out, o) {
			match(o)
		}
	}
	slices.SortFunc(out, func(a, c *Obstacle) int { return a.ID - c.ID })
	return out
}

// pushablesIn returns pushables overlapping r in ID order.
func (b *broadphase) pushablesIn(r gamemath.Rect, keep func(*Pushable) bool) []*Pushable {
	var out []*Pushable
	match := func(p *Pushable) {
		if p.Rect.Intersects(r) && (keep == nil || keep(p)) {
			out = append(out, p)
		}
	}

	if !b.covers(queryRect(r)) {
		for _, p := range b.pushables {
			match(p)
		}
		return out
	}
	for _, obj := range b.candidates(r, tags.ResolvPushable) {
		if p, ok := obj.Data.(*Pushable); ok && !slices.Contains(out, p) {
			match(p)
		}
	}
	slices.SortFunc(out, func(a, c *Pushable) int { return a.ID - c.ID })
	return out
}
