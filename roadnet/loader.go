package roadnet

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/paulmach/orb"
)

const defaultSpeedKmh = 50

// ParseJSON decodes an OSMnx node-link export. The exporter is loose with
// types (IDs as numbers or strings, maxspeed as string, list or number), so
// decoding goes through interface{} and tolerant converters.
func ParseJSON(data []byte, region string) (*Network, error) {
	var wrapped struct {
		Graph struct {
			Nodes []struct {
				ID interface{} `json:"id"`
				X  float64     `json:"x"`
				Y  float64     `json:"y"`
			} `json:"nodes"`
			Links []struct {
				Source   interface{} `json:"source"`
				Target   interface{} `json:"target"`
				Length   float64     `json:"length"`
				MaxSpeed interface{} `json:"maxspeed"`
				Highway  interface{} `json:"highway"`
			} `json:"links"`
		} `json:"graph"`

		// Some exports put nodes/links at the top level.
		Nodes []struct {
			ID interface{} `json:"id"`
			X  float64     `json:"x"`
			Y  float64     `json:"y"`
		} `json:"nodes"`
		Links []struct {
			Source   interface{} `json:"source"`
			Target   interface{} `json:"target"`
			Length   float64     `json:"length"`
			MaxSpeed interface{} `json:"maxspeed"`
			Highway  interface{} `json:"highway"`
		} `json:"links"`
	}

	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("roadnet: parse export: %w", err)
	}

	nodes := wrapped.Graph.Nodes
	links := wrapped.Graph.Links
	if len(nodes) == 0 {
		nodes = wrapped.Nodes
		links = wrapped.Links
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("roadnet: export has no nodes")
	}

	n := &Network{
		Region:   region,
		Vertices: make(map[int64]Vertex, len(nodes)),
		Arcs:     make(map[int64][]Arc),
	}

	for _, raw := range nodes {
		id := parseID(raw.ID)
		n.Vertices[id] = Vertex{ID: id, Point: orb.Point{raw.X, raw.Y}}
	}

	for _, raw := range links {
		from := parseID(raw.Source)
		to := parseID(raw.Target)
		if _, ok := n.Vertices[from]; !ok {
			continue
		}
		if _, ok := n.Vertices[to]; !ok {
			continue
		}
		arc := Arc{
			To:       to,
			LengthM:  raw.Length,
			SpeedKmh: parseSpeed(raw.MaxSpeed),
			Highway:  parseHighway(raw.Highway),
		}
		n.Arcs[from] = append(n.Arcs[from], arc)
	}

	return n, nil
}

// LoadJSONFile reads and parses an export file.
func LoadJSONFile(path, region string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roadnet: read %s: %w", path, err)
	}
	return ParseJSON(data, region)
}

var digits = regexp.MustCompile(`\d+`)

// parseID accepts numeric or string IDs; strings without digits hash to a
// stable int64.
func parseID(id interface{}) int64 {
	switch v := id.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		if m := digits.FindString(v); m != "" {
			if parsed, err := strconv.ParseInt(m, 10, 64); err == nil {
				return parsed
			}
		}
		hash := int64(0)
		for _, c := range v {
			hash = hash*31 + int64(c)
		}
		if hash < 0 {
			hash = -hash
		}
		return hash
	default:
		return 0
	}
}

// parseSpeed accepts "55 mph"-style strings, lists, or plain numbers.
func parseSpeed(speed interface{}) float64 {
	switch v := speed.(type) {
	case float64:
		if v > 0 {
			return v
		}
		return defaultSpeedKmh
	case string:
		if m := digits.FindString(v); m != "" {
			if parsed, err := strconv.ParseFloat(m, 64); err == nil && parsed > 0 {
				return parsed
			}
		}
		return defaultSpeedKmh
	case []interface{}:
		if len(v) > 0 {
			return parseSpeed(v[0])
		}
		return defaultSpeedKmh
	default:
		return defaultSpeedKmh
	}
}

// parseHighway takes the first tag when the exporter emits a list.
func parseHighway(hw interface{}) string {
	switch v := hw.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
