package roadnet

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Fetch downloads an OSMnx JSON export and parses it. The caller owns the
// client and its timeout.
func Fetch(ctx context.Context, client *http.Client, url, region string) (*Network, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("roadnet: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roadnet: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roadnet: fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("roadnet: read export: %w", err)
	}
	return ParseJSON(data, region)
}
