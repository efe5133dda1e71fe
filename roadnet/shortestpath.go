package roadnet

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

var (
	// ErrNoPath means the two vertices are not connected on the drive graph.
	ErrNoPath = errors.New("roadnet: no path between vertices")
	// ErrUnknownVertex means an endpoint ID is not part of the network.
	ErrUnknownVertex = errors.New("roadnet: unknown vertex")
)

// Path is a resolved road-network route.
type Path struct {
	Points        orb.LineString
	DistanceM     float64
	TravelTimeMin float64
	Road          models.RoadKind
}

type pqItem struct {
	vertex   int64
	priority float64
	gScore   float64
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath runs A* over arc lengths from one vertex to another. The
// straight-line distance is an admissible heuristic for length-weighted
// search. The context is checked periodically so a deadline set by the
// caller bounds the exploration.
func (n *Network) ShortestPath(ctx context.Context, from, to int64) (*Path, error) {
	if _, ok := n.Vertices[from]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, from)
	}
	target, ok := n.Vertices[to]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, to)
	}

	gScore := map[int64]float64{from: 0}
	cameFrom := make(map[int64]int64)
	visited := make(map[int64]bool)

	pq := priorityQueue{{vertex: from, priority: heuristicM(n, from, target)}}
	heap.Init(&pq)

	pops := 0
	for pq.Len() > 0 {
		pops++
		if pops%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("roadnet: search aborted: %w", err)
			}
		}

		current := heap.Pop(&pq).(*pqItem)
		if current.vertex == to {
			return n.assemblePath(cameFrom, from, to)
		}
		if visited[current.vertex] {
			continue
		}
		visited[current.vertex] = true

		for _, arc := range n.Arcs[current.vertex] {
			if visited[arc.To] {
				continue
			}
			tentative := gScore[current.vertex] + arc.LengthM
			if existing, seen := gScore[arc.To]; !seen || tentative < existing {
				gScore[arc.To] = tentative
				cameFrom[arc.To] = current.vertex
				heap.Push(&pq, &pqItem{
					vertex:   arc.To,
					gScore:   tentative,
					priority: tentative + heuristicM(n, arc.To, target),
				})
			}
		}
	}

	return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, from, to)
}

func heuristicM(n *Network, id int64, target Vertex) float64 {
	v, ok := n.Vertices[id]
	if !ok {
		return 0
	}
	return geo.DistanceHaversine(v.Point, target.Point)
}

// assemblePath walks the predecessor chain and accumulates per-arc distance,
// travel time and surface composition.
func (n *Network) assemblePath(cameFrom map[int64]int64, from, to int64) (*Path, error) {
	order := []int64{to}
	for current := to; current != from; {
		prev, ok := cameFrom[current]
		if !ok {
			return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, from, to)
		}
		order = append(order, prev)
		current = prev
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	path := &Path{Points: make(orb.LineString, 0, len(order))}
	kindMeters := make(map[models.RoadKind]float64)

	for i, id := range order {
		path.Points = append(path.Points, n.Vertices[id].Point)
		if i == 0 {
			continue
		}
		arc, ok := n.arcBetween(order[i-1], id)
		if !ok {
			continue
		}
		path.DistanceM += arc.LengthM
		speed := arc.SpeedKmh
		if speed <= 0 {
			speed = defaultSpeedKmh
		}
		path.TravelTimeMin += arc.LengthM / 1000 / speed * 60
		kindMeters[ClassifyHighway(arc.Highway)] += arc.LengthM
	}

	path.Road = dominantKind(kindMeters)
	return path, nil
}

func (n *Network) arcBetween(from, to int64) (Arc, bool) {
	for _, arc := range n.Arcs[from] {
		if arc.To == to {
			return arc, true
		}
	}
	return Arc{}, false
}

func dominantKind(kindMeters map[models.RoadKind]float64) models.RoadKind {
	best := models.RoadPaved
	bestM := -1.0
	for _, kind := range []models.RoadKind{models.RoadPaved, models.RoadGravel, models.RoadDirt} {
		if m := kindMeters[kind]; m > bestM {
			best = kind
			bestM = m
		}
	}
	return best
}
