// packgraph converts an OSMnx JSON export into the gob cache the server
// loads at startup.
//
// Usage:
//
//	packgraph -in data/roadnet/yuma.json -out data/roadnet/yuma.gob -region yuma
package main

import (
	"flag"
	"log"

	"github.com/caponcito/Plantaciones-agronomas/roadnet"
)

func main() {
	in := flag.String("in", "", "OSMnx JSON export to read")
	out := flag.String("out", "", "gob cache file to write")
	region := flag.String("region", "yuma", "region name stored in the cache")
	flag.Parse()

	if *in == "" || *out == "" {
		log.Fatal("both -in and -out are required")
	}

	n, err := roadnet.LoadJSONFile(*in, *region)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}
	log.Printf("Parsed %s: %d vertices, %d arcs", *in, n.VertexCount(), n.ArcCount())

	if err := roadnet.SaveGob(n, *out); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %s", *out)
}
