package ai

import (
	"context"
	"errors"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type GeneratorEntry struct {
	Name      string
	Generator IGenerator
}

// groupGenerator tries entries in order, so a hosted provider can fall back
// to a local runtime. An entry that reports ErrNotConfigured is skipped
// silently; the chain only counts as unconfigured when every entry is.
type groupGenerator struct {
	items []GeneratorEntry
}

func NewGroupGenerator(items []GeneratorEntry) IGenerator {
	if len(items) == 0 {
		return nil
	}
	return &groupGenerator{items: items}
}

func (g *groupGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	allUnconfigured := true
	for i, item := range g.items {
		if item.Generator == nil {
			continue
		}
		res, err := item.Generator.Generate(ctx, prompt)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNotConfigured) {
			allUnconfigured = false
			lastErr = err
			logutil.GetLogger(ctx).Warn("generator failed",
				zap.Int("index", i),
				zap.String("name", item.Name),
				zap.Error(err),
			)
			continue
		}
		if lastErr == nil {
			lastErr = err
		}
	}
	if allUnconfigured {
		return "", ErrNotConfigured
	}
	return "", lastErr
}
