package biometric

import (
	"context"
	"fmt"
	"image"

	"github.com/rs/zerolog/log"
)

// Detector locates the face in a frame and returns the cropped region.
// found is false when the frame holds no face.
type Detector interface {
	Detect(ctx context.Context, frame image.Image) (region image.Image, found bool, err error)
}

// Embedder turns a face region into a template. Recognisers of any kind
// (LBP histograms, deep embeddings) plug in here.
type Embedder interface {
	Embed(ctx context.Context, region image.Image) (Template, error)
}

// Sample is a labeled frame to enroll.
type Sample struct {
	Label string
	Frame image.Image
}

// Enroll runs every sample through detector and embedder and returns the
// resulting template list in sample order. Samples without a face, or whose
// embedding fails, are skipped. A detector error aborts enrollment.
func Enroll(ctx context.Context, samples []Sample, detector Detector, embedder Embedder) ([]LabeledTemplate, error) {
	templates := make([]LabeledTemplate, 0, len(samples))
	skipped := 0

	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		region, found, err := detector.Detect(ctx, s.Frame)
		if err != nil {
			return nil, fmt.Errorf("detect sample %d (%s): %w", i, s.Label, err)
		}
		if !found {
			skipped++
			log.Debug().Int("sample", i).Str("label", s.Label).Msg("no face detected, skipping sample")
			continue
		}

		template, err := embedder.Embed(ctx, region)
		if err != nil {
			skipped++
			log.Warn().Err(err).Int("sample", i).Str("label", s.Label).Msg("embedding failed, skipping sample")
			continue
		}

		templates = append(templates, LabeledTemplate{Label: s.Label, Template: template})
	}

	log.Info().Int("enrolled", len(templates)).Int("skipped", skipped).Msg("enrollment finished")
	return templates, nil
}
