package pipeline

import (
	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// GenerateLayout validates doc and computes its scene without caching.
func GenerateLayout(doc *content.Document, opts Options) (scene.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Scene{}, err
	}
	res, err := layout.Compute(doc, opts.LayoutConfig())
	if err != nil {
		return scene.Scene{}, err
	}
	return scene.FromLayout(res), nil
}
