// Package routing resolves point-to-point routes between supply network
// nodes. Resolution prefers, in order: a direct graph edge, a lookup on the
// real road network, and a synthetic great-circle estimate. Road network
// failures never surface to callers; the resolver degrades to the synthetic
// path and flags the result accordingly.
package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/singleflight"

	"github.com/caponcito/Plantaciones-agronomas/config"
	"github.com/caponcito/Plantaciones-agronomas/graph"
	"github.com/caponcito/Plantaciones-agronomas/models"
	"github.com/caponcito/Plantaciones-agronomas/roadnet"
)

// ErrRouteNotFound is returned only when an endpoint carries coordinates no
// resolution path can work with.
var ErrRouteNotFound = errors.New("routing: route not found")

// RoadNetwork is the provider the resolver queries for real road data.
// *roadnet.Network satisfies it; tests substitute fakes.
type RoadNetwork interface {
	NearestVertex(p orb.Point) (roadnet.Vertex, float64, bool)
	ShortestPath(ctx context.Context, from, to int64) (*roadnet.Path, error)
}

// Resolver answers route queries over one supply graph. Results are cached
// for the process lifetime under the directed pair key, so repeated queries
// return the identical result. Cached results are shared; callers must not
// modify them.
type Resolver struct {
	graph   *graph.Graph
	network RoadNetwork
	params  config.RoutingParams
	timeout time.Duration

	mu    sync.RWMutex
	cache map[string]*models.RouteResult
	group singleflight.Group
}

// NewResolver wires a resolver. network may be nil when no road data is
// available; every non-edge query then takes the synthetic path.
func NewResolver(g *graph.Graph, network RoadNetwork, params config.RoutingParams, timeout time.Duration) *Resolver {
	return &Resolver{
		graph:   g,
		network: network,
		params:  params,
		timeout: timeout,
		cache:   make(map[string]*models.RouteResult),
	}
}

// Resolve computes or recalls the route from one node to another.
func (r *Resolver) Resolve(ctx context.Context, fromID, toID string) (*models.RouteResult, error) {
	from, ok := r.graph.Node(fromID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrNodeNotFound, fromID)
	}
	to, ok := r.graph.Node(toID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrNodeNotFound, toID)
	}
	if !models.ValidCoordinate(from.Location()) || !models.ValidCoordinate(to.Location()) {
		return nil, fmt.Errorf("%w: %s -> %s: invalid endpoint coordinates", ErrRouteNotFound, fromID, toID)
	}

	key := fromID + "->" + toID
	if res := r.cached(key); res != nil {
		return res, nil
	}

	// Concurrent queries for the same directed pair share one computation.
	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		if res := r.cached(key); res != nil {
			return res, nil
		}
		res := r.resolve(ctx, from, to)
		r.mu.Lock()
		r.cache[key] = res
		r.mu.Unlock()
		return res, nil
	})
	return v.(*models.RouteResult), nil
}

// CacheSize reports how many directed pairs have been resolved.
func (r *Resolver) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func (r *Resolver) cached(key string) *models.RouteResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cache[key]
}

func (r *Resolver) resolve(ctx context.Context, from, to models.Node) *models.RouteResult {
	if e, ok := r.graph.EdgeBetween(from.ID(), to.ID()); ok {
		return edgeResult(from, to, e)
	}

	if r.network != nil {
		res, err := r.realRoute(ctx, from, to)
		if err == nil {
			return res
		}
		log.Printf("route %s -> %s: road network lookup failed (%v), using synthetic estimate",
			from.ID(), to.ID(), err)
	}

	return r.synthetic(from, to)
}

// edgeResult copies a direct edge verbatim into a result.
func edgeResult(from, to models.Node, e models.Edge) *models.RouteResult {
	geometry := e.Geometry
	if len(geometry) < 2 {
		geometry = orb.LineString{from.Location(), to.Location()}
	}
	return &models.RouteResult{
		From:              e.From,
		To:                e.To,
		DistanceKm:        e.DistanceKm,
		TimeMinutes:       e.TimeMinutes,
		CostPerTon:        e.CostPerTon,
		Road:              e.Road,
		AvgSpeedKmh:       e.AvgSpeedKmh,
		RainAccessibility: e.RainAccessibility,
		Geometry:          geometry,
		Source:            models.SourceGraphEdge,
		UsesRealRoute:     e.RealGeometry,
		Segments: []models.RouteSegment{{
			Geometry:   geometry,
			DistanceKm: e.DistanceKm,
			Road:       e.Road,
			Synthetic:  !e.RealGeometry,
		}},
	}
}

// realRoute stitches a road network path between the vertices nearest to
// the endpoints, bridging each endpoint with a synthetic access segment
// when it sits away from the network. The result's accessibility is the
// worst across its segments.
func (r *Resolver) realRoute(ctx context.Context, from, to models.Node) (*models.RouteResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	va, distA, ok := r.network.NearestVertex(from.Location())
	if !ok {
		return nil, errors.New("road network has no vertices")
	}
	vb, distB, ok := r.network.NearestVertex(to.Location())
	if !ok {
		return nil, errors.New("road network has no vertices")
	}

	path, err := r.network.ShortestPath(ctx, va.ID, vb.ID)
	if err != nil {
		return nil, err
	}

	var (
		segments []models.RouteSegment
		geometry orb.LineString
		distKm   float64
		timeMin  float64
	)
	minAccess := r.params.AccessibilityFor(path.Road)

	if distA > r.params.AccessCutoffM {
		seg := r.accessSegment(from.Location(), va.Point)
		segments = append(segments, seg)
		geometry = append(geometry, seg.Geometry...)
		distKm += seg.DistanceKm
		timeMin += seg.DistanceKm / r.params.AccessSpeedKmh * 60
		if acc := r.params.AccessibilityFor(seg.Road); acc < minAccess {
			minAccess = acc
		}
	}

	main := models.RouteSegment{
		Geometry:   path.Points,
		DistanceKm: path.DistanceM / 1000,
		Road:       path.Road,
	}
	segments = append(segments, main)
	geometry = append(geometry, path.Points...)
	distKm += main.DistanceKm
	if path.TravelTimeMin > 0 {
		timeMin += path.TravelTimeMin
	} else {
		timeMin += main.DistanceKm / r.params.SpeedFor(path.Road) * 60
	}

	if distB > r.params.AccessCutoffM {
		seg := r.accessSegment(vb.Point, to.Location())
		segments = append(segments, seg)
		geometry = append(geometry, seg.Geometry...)
		distKm += seg.DistanceKm
		timeMin += seg.DistanceKm / r.params.AccessSpeedKmh * 60
		if acc := r.params.AccessibilityFor(seg.Road); acc < minAccess {
			minAccess = acc
		}
	}

	var avgSpeed float64
	if timeMin > 0 {
		avgSpeed = distKm / (timeMin / 60)
	}

	return &models.RouteResult{
		From:              from.ID(),
		To:                to.ID(),
		DistanceKm:        distKm,
		TimeMinutes:       timeMin,
		CostPerTon:        distKm * r.params.CostPerKm,
		Road:              path.Road,
		AvgSpeedKmh:       avgSpeed,
		RainAccessibility: minAccess,
		Geometry:          geometry,
		Source:            models.SourceRoadNetwork,
		UsesRealRoute:     true,
		Segments:          segments,
	}, nil
}

// accessSegment bridges a node to the road network over assumed dirt track,
// one interpolated point per ~200 m.
func (r *Resolver) accessSegment(a, b orb.Point) models.RouteSegment {
	km := models.DistanceKm(a, b)
	return models.RouteSegment{
		Geometry:   models.InterpolatedLine(a, b, int(km*5)),
		DistanceKm: km,
		Road:       models.RoadDirt,
		Synthetic:  true,
	}
}

// synthetic estimates a route from the great-circle distance alone. Surface,
// speed and accessibility come from the configured distance brackets.
func (r *Resolver) synthetic(from, to models.Node) *models.RouteResult {
	km := models.DistanceKm(from.Location(), to.Location())
	kind := r.params.KindForDistance(km)
	speed := r.params.SpeedFor(kind)
	geometry := models.InterpolatedLine(from.Location(), to.Location(), r.params.SyntheticWaypoints)

	return &models.RouteResult{
		From:              from.ID(),
		To:                to.ID(),
		DistanceKm:        km,
		TimeMinutes:       km / speed * 60,
		CostPerTon:        km * r.params.CostPerKm,
		Road:              kind,
		AvgSpeedKmh:       speed,
		RainAccessibility: r.params.AccessibilityFor(kind),
		Geometry:          geometry,
		Source:            models.SourceSynthetic,
		UsesRealRoute:     false,
		Segments: []models.RouteSegment{{
			Geometry:   geometry,
			DistanceKm: km,
			Road:       kind,
			Synthetic:  true,
		}},
	}
}
