package configloader

import "github.com/yaklabco/srcexcerpt/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Scalars overwrite when non-zero in override; pointer fields overwrite when
// non-nil, so an explicit false or 0 still wins.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.ChunkSize != 0 {
		result.ChunkSize = override.ChunkSize
	}
	if override.ExpectedLength != 0 {
		result.ExpectedLength = override.ExpectedLength
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.Caret = pick(result.Caret, override.Caret)
	result.Markdown = pick(result.Markdown, override.Markdown)

	result.Window.PointBefore = pick(result.Window.PointBefore, override.Window.PointBefore)
	result.Window.PointAfter = pick(result.Window.PointAfter, override.Window.PointAfter)
	result.Window.RangeBefore = pick(result.Window.RangeBefore, override.Window.RangeBefore)
	result.Window.RangeAfter = pick(result.Window.RangeAfter, override.Window.RangeAfter)

	return result
}

func pick[T any](base, override *T) *T {
	if override == nil {
		return base
	}
	v := *override
	return &v
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
