package idscan

import (
	"go.uber.org/zap"

	"github.com/tsawler/idscan/model"
)

// ExtractOptions holds configuration for an extraction call.
type ExtractOptions struct {
	// Back-side detections, when the caller scanned both sides.
	back []model.TextDetection

	// Front image dimensions in pixels, or zero when unknown. Strategies
	// that use relative positions degrade gracefully without them.
	imageWidth  float64
	imageHeight float64

	// Logger for per-field degradation reporting; nil means no-op.
	logger *zap.Logger

	// Target document layout family.
	country Country
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		back:        nil,
		imageWidth:  0,
		imageHeight: 0,
		logger:      nil,
		country:     countryUnset,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		imageWidth:  o.imageWidth,
		imageHeight: o.imageHeight,
		logger:      o.logger,
		country:     o.country,
	}

	if o.back != nil {
		newOpts.back = make([]model.TextDetection, len(o.back))
		copy(newOpts.back, o.back)
	}

	return newOpts
}
