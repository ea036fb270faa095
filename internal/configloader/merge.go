package configloader

import "github.com/yaklabco/shadersplit/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set, so false is meaningful
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.Overwrite != "" {
		result.Overwrite = override.Overwrite
	}
	if override.NestedBlocks != "" {
		result.NestedBlocks = override.NestedBlocks
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// DryRun only exists on the command line and can only be switched on.
	if override.DryRun {
		result.DryRun = true
	}

	if override.Strict != nil {
		result.Strict = override.Strict
	}
	if override.Backup != nil {
		result.Backup = override.Backup
	}
	if override.CheckLanguage != nil {
		result.CheckLanguage = override.CheckLanguage
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = override.FollowSymlinks
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
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
