package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// LoadCSV reads a network from CSV exports in dir.
// Required files: parcels.csv, centers.csv, plants.csv, edges.csv
func LoadCSV(dir string, region models.Region) (*Store, error) {
	var nodes []models.Node

	parcels, err := loadParcels(filepath.Join(dir, "parcels.csv"))
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, parcels...)

	centers, err := loadCenters(filepath.Join(dir, "centers.csv"))
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, centers...)

	plants, err := loadPlants(filepath.Join(dir, "plants.csv"))
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, plants...)

	edges, err := loadEdges(filepath.Join(dir, "edges.csv"))
	if err != nil {
		return nil, err
	}

	return New(region, nodes, edges)
}

func loadParcels(path string) ([]models.Node, error) {
	var out []models.Node
	err := eachRow(path, func(get func(string) string) error {
		lat, lon, err := parseLatLon(get)
		if err != nil {
			return err
		}
		area, _ := strconv.ParseFloat(get("area_ha"), 64)
		production, _ := strconv.ParseFloat(get("production_tons"), 64)
		storage, _ := strconv.ParseFloat(get("storage_tons"), 64)
		coldRoom, _ := strconv.ParseBool(get("has_cold_room"))
		veg, _ := strconv.ParseFloat(get("vegetation_index"), 64)
		soil, _ := strconv.ParseFloat(get("soil_humidity"), 64)
		temp, _ := strconv.ParseFloat(get("avg_temperature"), 64)

		out = append(out, &models.Parcel{
			NodeID:          get("id"),
			Coord:           orb.Point{lon, lat},
			Crop:            get("crop"),
			AreaHa:          area,
			ProductionTons:  production,
			StorageTons:     storage,
			HasColdRoom:     coldRoom,
			VegetationIndex: veg,
			SoilHumidity:    soil,
			AvgTemperature:  temp,
		})
		return nil
	})
	return out, err
}

func loadCenters(path string) ([]models.Node, error) {
	var out []models.Node
	err := eachRow(path, func(get func(string) string) error {
		lat, lon, err := parseLatLon(get)
		if err != nil {
			return err
		}
		capacity, _ := strconv.ParseFloat(get("capacity_tons"), 64)
		coldChain, _ := strconv.ParseBool(get("has_cold_chain"))
		trucks, _ := strconv.Atoi(get("trucks"))

		out = append(out, &models.CollectionCenter{
			NodeID:       get("id"),
			Coord:        orb.Point{lon, lat},
			CapacityTons: capacity,
			HasColdChain: coldChain,
			Trucks:       trucks,
		})
		return nil
	})
	return out, err
}

func loadPlants(path string) ([]models.Node, error) {
	var out []models.Node
	err := eachRow(path, func(get func(string) string) error {
		lat, lon, err := parseLatLon(get)
		if err != nil {
			return err
		}
		capacity, _ := strconv.ParseFloat(get("daily_capacity_tons"), 64)
		coldChain, _ := strconv.ParseBool(get("requires_cold_chain"))

		out = append(out, &models.ExtractionPlant{
			NodeID:            get("id"),
			Coord:             orb.Point{lon, lat},
			DailyCapacityTons: capacity,
			Schedule:          get("schedule"),
			NeedsColdChain:    coldChain,
		})
		return nil
	})
	return out, err
}

func loadEdges(path string) ([]models.Edge, error) {
	var out []models.Edge
	err := eachRow(path, func(get func(string) string) error {
		distance, _ := strconv.ParseFloat(get("distance_km"), 64)
		minutes, _ := strconv.ParseFloat(get("time_minutes"), 64)
		cost, _ := strconv.ParseFloat(get("cost_per_ton"), 64)
		speed, _ := strconv.ParseFloat(get("avg_speed_kmh"), 64)
		access, _ := strconv.ParseFloat(get("rain_accessibility"), 64)

		out = append(out, models.Edge{
			From:              get("from"),
			To:                get("to"),
			DistanceKm:        distance,
			TimeMinutes:       minutes,
			CostPerTon:        cost,
			Road:              models.RoadKind(get("road_kind")),
			AvgSpeedKmh:       speed,
			RainAccessibility: access,
			Connection:        models.ConnectionKind(get("connection_kind")),
		})
		return nil
	})
	return out, err
}

// eachRow opens a CSV file, reads the header, and calls fn once per data
// row with a tolerant column getter.
func eachRow(path string, fn func(get func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", filepath.Base(path), err)
	}
	h := headerIndex(header)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s row: %w", filepath.Base(path), err)
		}

		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if err := fn(get); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func parseLatLon(get func(string) string) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(get("lat"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad lat %q", get("lat"))
	}
	lon, err = strconv.ParseFloat(get("lon"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad lon %q", get("lon"))
	}
	return lat, lon, nil
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.TrimSpace(k)] = i
	}
	return m
}
