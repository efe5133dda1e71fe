package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

const wrappedExport = `{
  "graph": {
    "nodes": [
      {"id": 1, "x": -114.61, "y": 32.70},
      {"id": "node_2", "x": -114.60, "y": 32.71}
    ],
    "links": [
      {"source": 1, "target": "node_2", "length": 850.5, "maxspeed": "55 mph", "highway": ["residential", "tertiary"]}
    ]
  }
}`

const flatExport = `{
  "nodes": [
    {"id": 10, "x": -114.61, "y": 32.70},
    {"id": 11, "x": -114.60, "y": 32.71}
  ],
  "links": [
    {"source": 10, "target": 11, "length": 420, "maxspeed": 80, "highway": "primary"},
    {"source": 10, "target": 99, "length": 5, "maxspeed": 30, "highway": "service"}
  ]
}`

func TestParseJSONWrappedExport(t *testing.T) {
	n, err := ParseJSON([]byte(wrappedExport), "yuma")
	require.NoError(t, err)

	assert.Equal(t, "yuma", n.Region)
	assert.Equal(t, 2, n.VertexCount())
	assert.Equal(t, 1, n.ArcCount())

	v, ok := n.Vertices[1]
	require.True(t, ok)
	assert.InDelta(t, -114.61, v.Point.Lon(), 1e-9)
	assert.InDelta(t, 32.70, v.Point.Lat(), 1e-9)

	arcs := n.Arcs[1]
	require.Len(t, arcs, 1)
	assert.Equal(t, int64(2), arcs[0].To)
	assert.Equal(t, 850.5, arcs[0].LengthM)
	assert.Equal(t, 55.0, arcs[0].SpeedKmh)
	assert.Equal(t, "residential", arcs[0].Highway)
}

func TestParseJSONFlatExportSkipsDanglingLinks(t *testing.T) {
	n, err := ParseJSON([]byte(flatExport), "yuma")
	require.NoError(t, err)

	assert.Equal(t, 2, n.VertexCount())
	// The link pointing at the unknown vertex 99 is dropped.
	assert.Equal(t, 1, n.ArcCount())
	assert.Equal(t, 80.0, n.Arcs[10][0].SpeedKmh)
}

func TestParseJSONRejectsEmptyExport(t *testing.T) {
	_, err := ParseJSON([]byte(`{"nodes": [], "links": []}`), "yuma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nodes")

	_, err = ParseJSON([]byte(`not json`), "yuma")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(42), parseID(float64(42)))
	assert.Equal(t, int64(42), parseID(int64(42)))
	assert.Equal(t, int64(42), parseID(42))
	assert.Equal(t, int64(7031), parseID("osm_7031"))
	assert.Equal(t, int64(0), parseID(nil))

	// Digitless strings hash to a stable non-negative ID.
	a := parseID("junction")
	assert.Equal(t, a, parseID("junction"))
	assert.GreaterOrEqual(t, a, int64(0))
}

func TestParseSpeed(t *testing.T) {
	assert.Equal(t, 70.0, parseSpeed(float64(70)))
	assert.Equal(t, 55.0, parseSpeed("55 mph"))
	assert.Equal(t, 60.0, parseSpeed([]interface{}{"60", "40"}))
	assert.Equal(t, float64(defaultSpeedKmh), parseSpeed(nil))
	assert.Equal(t, float64(defaultSpeedKmh), parseSpeed("unknown"))
	assert.Equal(t, float64(defaultSpeedKmh), parseSpeed(float64(0)))
}

func TestParseHighway(t *testing.T) {
	assert.Equal(t, "primary", parseHighway("primary"))
	assert.Equal(t, "tertiary", parseHighway([]interface{}{"tertiary", "service"}))
	assert.Equal(t, "", parseHighway(nil))
	assert.Equal(t, "", parseHighway([]interface{}{}))
}

func TestClassifyHighway(t *testing.T) {
	assert.Equal(t, models.RoadPaved, ClassifyHighway("motorway"))
	assert.Equal(t, models.RoadPaved, ClassifyHighway("residential"))
	assert.Equal(t, models.RoadPaved, ClassifyHighway(""))
	assert.Equal(t, models.RoadGravel, ClassifyHighway("unclassified"))
	assert.Equal(t, models.RoadGravel, ClassifyHighway("service"))
	assert.Equal(t, models.RoadDirt, ClassifyHighway("track"))
	assert.Equal(t, models.RoadDirt, ClassifyHighway("path"))
}
