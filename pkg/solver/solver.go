// pkg/solver/solver.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package solver implements the two path-solving variants spec.md 4.D
// calls the hard subsystem: a layered-DAG shortest path (DistanceMin) and
// longest path (DistanceMax) over candidate boundary vertices, one layer
// per remaining task point. Both share the same layered-DAG shape; the
// open list for DistanceMin is a container/heap priority queue in the
// style of the pack's grid A* pathfinder, adapted to a DAG whose layers
// are task points rather than grid cells.
package solver

import (
	"container/heap"
	"math"

	"github.com/mmp/glidetask/pkg/geo"
	"github.com/mmp/glidetask/pkg/util"
)

// Layer is one task point's set of candidate boundary vertices the
// solved path may pass through.
type Layer []geo.SearchPoint

// Result is a solved path: the total distance and the chosen vertex for
// each layer (aligned by index; DistanceMin's first "layer" is the
// aircraft's own singleton position and is not included in Chosen).
type Result struct {
	Total  float64
	Chosen []geo.SearchPoint
}

// node is one (layer, vertex) pair in the search graph; recycled between
// solves via an ObjectArena per spec.md 5's allocation discipline.
type node struct {
	layer, vertex int
	dist          float64
	prev          *node
	index         int // heap index, maintained by container/heap
}

var nodeArena util.ObjectArena[node]

func allocNode(layer, vertex int, dist float64, prev *node) *node {
	n := nodeArena.AllocClear()
	n.layer, n.vertex, n.dist, n.prev = layer, vertex, dist, prev
	return n
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *nodeHeap) Push(x interface{}) { n := x.(*node); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// DistanceMin finds the shortest polyline from the aircraft's current
// position through one candidate vertex of each remaining layer in order,
// per spec.md 4.D. Returns the total distance (meters, via projected
// Euclidean distance) and the chosen vertex for each layer.
func DistanceMin(start geo.Point, pr geo.Projection, layers []Layer) Result {
	if len(layers) == 0 {
		return Result{}
	}
	nodeArena.Reset()
	startProj := pr.ProjectInteger(start)

	// best[l][v] holds the cheapest node reaching vertex v of layer l.
	best := make([][]*node, len(layers))
	for l := range layers {
		best[l] = make([]*node, len(layers[l]))
	}

	h := &nodeHeap{}
	heap.Init(h)
	for v, sp := range layers[0] {
		d := geo.Distance(startProj, sp.Projected)
		n := allocNode(0, v, d, nil)
		best[0][v] = n
		heap.Push(h, n)
	}

	for h.Len() > 0 {
		cur := heap.Pop(h).(*node)
		if best[cur.layer][cur.vertex] != cur {
			continue // stale entry, superseded by a cheaper relaxation
		}
		if cur.layer == len(layers)-1 {
			continue // terminal layer; nothing to relax forward to
		}
		next := layers[cur.layer+1]
		for v, sp := range next {
			d := cur.dist + geo.Distance(layers[cur.layer][cur.vertex].Projected, sp.Projected)
			if best[cur.layer+1][v] == nil || d < best[cur.layer+1][v].dist {
				n := allocNode(cur.layer+1, v, d, cur)
				best[cur.layer+1][v] = n
				heap.Push(h, n)
			}
		}
	}

	return extractMin(best, layers)
}

// DistanceMax finds the longest polyline visiting one vertex per layer in
// order, per spec.md 4.D's scored-distance rule for area tasks. The
// layers form a DAG with a fixed topological order (layer index), so the
// longest path is computed by a forward relaxation sweep rather than a
// priority queue: with strictly increasing layer indices there are no
// negative cycles to worry about, and the sweep is both simpler and
// cheaper than negating weights into a min-heap.
func DistanceMax(layers []Layer) Result {
	if len(layers) == 0 {
		return Result{}
	}
	nodeArena.Reset()

	best := make([][]*node, len(layers))
	for l := range layers {
		best[l] = make([]*node, len(layers[l]))
		for v := range layers[l] {
			dist := 0.0
			if l > 0 {
				dist = math.Inf(-1)
			}
			best[l][v] = allocNode(l, v, dist, nil)
		}
	}

	for l := 0; l < len(layers)-1; l++ {
		for v := range layers[l] {
			cur := best[l][v]
			if cur.dist == math.Inf(-1) {
				continue
			}
			for nv, sp := range layers[l+1] {
				d := cur.dist + geo.Distance(layers[l][v].Projected, sp.Projected)
				if d > best[l+1][nv].dist {
					best[l+1][nv].dist = d
					best[l+1][nv].prev = cur
				}
			}
		}
	}

	return extractMax(best, layers)
}

// extractMin picks, in the final layer, the node with the smallest
// distance reached, then walks prev links back to build Chosen.
func extractMin(best [][]*node, layers []Layer) Result {
	lastLayer := len(best) - 1
	var terminal *node
	for _, n := range best[lastLayer] {
		if n == nil {
			continue
		}
		if terminal == nil || n.dist < terminal.dist {
			terminal = n
		}
	}
	return buildResult(terminal, layers)
}

// extractMax picks, in the final layer, the node with the greatest finite
// distance reached, then walks prev links back to build Chosen.
func extractMax(best [][]*node, layers []Layer) Result {
	lastLayer := len(best) - 1
	var terminal *node
	for _, n := range best[lastLayer] {
		if n == nil || math.IsInf(n.dist, -1) {
			continue
		}
		if terminal == nil || n.dist > terminal.dist {
			terminal = n
		}
	}
	return buildResult(terminal, layers)
}

func buildResult(terminal *node, layers []Layer) Result {
	if terminal == nil {
		return Result{}
	}
	chosen := make([]geo.SearchPoint, len(layers))
	for n := terminal; n != nil; n = n.prev {
		chosen[n.layer] = layers[n.layer][n.vertex]
	}
	return Result{Total: terminal.dist, Chosen: chosen}
}
