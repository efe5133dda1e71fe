package roadnet

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// SaveGob writes the network to a binary cache file.
func SaveGob(n *Network, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("roadnet: create cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("roadnet: create %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(n); err != nil {
		return fmt.Errorf("roadnet: encode %s: %w", path, err)
	}
	return nil
}

// LoadGob reads a network from a binary cache file.
func LoadGob(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadnet: open %s: %w", path, err)
	}
	defer f.Close()

	var n Network
	if err := gob.NewDecoder(f).Decode(&n); err != nil {
		return nil, fmt.Errorf("roadnet: decode %s: %w", path, err)
	}
	return &n, nil
}

// Load resolves a region from dir, preferring the gob cache and falling
// back to the JSON export. When only the JSON exists the gob cache is
// written for next time.
func Load(dir, region string) (*Network, error) {
	gobPath := filepath.Join(dir, region+".gob")
	if _, err := os.Stat(gobPath); err == nil {
		return LoadGob(gobPath)
	}

	jsonPath := filepath.Join(dir, region+".json")
	n, err := LoadJSONFile(jsonPath, region)
	if err != nil {
		return nil, err
	}

	if err := SaveGob(n, gobPath); err != nil {
		log.Printf("roadnet: could not cache %s: %v", region, err)
	}
	return n, nil
}
