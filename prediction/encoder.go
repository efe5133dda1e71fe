package prediction

import (
	"sort"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// UnknownCrop is the code for crops the encoder never saw at fit time.
const UnknownCrop = -1

// CropEncoder maps crop names onto stable integer codes. It is fitted once
// per training run and frozen into the model; the same name always encodes
// to the same code for the lifetime of that model.
type CropEncoder struct {
	codes map[string]int
}

// FitCropEncoder assigns codes 0..n-1 to the distinct crops in sorted
// order, so fitting the same crop set always yields the same mapping.
func FitCropEncoder(parcels []*models.Parcel) *CropEncoder {
	seen := make(map[string]struct{})
	for _, p := range parcels {
		seen[p.Crop] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	codes := make(map[string]int, len(names))
	for i, name := range names {
		codes[name] = i
	}
	return &CropEncoder{codes: codes}
}

// Encode returns the crop's code, or UnknownCrop for names not seen at fit
// time.
func (e *CropEncoder) Encode(crop string) int {
	if code, ok := e.codes[crop]; ok {
		return code
	}
	return UnknownCrop
}

// Classes lists the known crops in code order.
func (e *CropEncoder) Classes() []string {
	out := make([]string, len(e.codes))
	for name, code := range e.codes {
		out[code] = name
	}
	return out
}
