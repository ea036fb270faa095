package config

import "fmt"

// yamlTemplate is the commented project configuration written by init.
const yamlTemplate = `# shadersplit configuration
# Splits combined .glshader files into .vert and .frag stage files.

# Directory receiving the stage files; empty writes next to each source.
# output_dir: build/shaders

# Extensions of combined shader files.
extensions:
  - .glshader
  - .shader

# Glob patterns to skip.
# ignore:
#   - "vendor/**"
#   - "**/third_party"

# When to replace stage files: always or if-changed.
overwrite: always

# A region or shader block opened inside another: reject or overwrite.
nested_blocks: reject

# Treat a missing version directive or parameters region as a failure.
strict: false

# Copy an existing stage file aside before replacing it.
backup: false

# Warn when a stage body looks like HLSL or WGSL.
check_language: true

# Walk symlinked directories.
# follow_symlinks: false

# Log level: debug, info, warn or error.
log_level: warn
`

// tomlTemplate mirrors yamlTemplate.
const tomlTemplate = `# shadersplit configuration
# Splits combined .glshader files into .vert and .frag stage files.

# Directory receiving the stage files; empty writes next to each source.
# output_dir = "build/shaders"

# Extensions of combined shader files.
extensions = [".glshader", ".shader"]

# Glob patterns to skip.
# ignore = ["vendor/**", "**/third_party"]

# When to replace stage files: always or if-changed.
overwrite = "always"

# A region or shader block opened inside another: reject or overwrite.
nested_blocks = "reject"

# Treat a missing version directive or parameters region as a failure.
strict = false

# Copy an existing stage file aside before replacing it.
backup = false

# Warn when a stage body looks like HLSL or WGSL.
check_language = true

# Walk symlinked directories.
# follow_symlinks = false

# Log level: debug, info, warn or error.
log_level = "warn"
`

// GenerateTemplate returns a commented configuration file holding the
// default settings.
func GenerateTemplate(format FileFormat) ([]byte, error) {
	switch format {
	case FileFormatYAML:
		return []byte(yamlTemplate), nil
	case FileFormatTOML:
		return []byte(tomlTemplate), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

// DefaultFileName returns the project configuration file name for format.
func DefaultFileName(format FileFormat) string {
	if format == FileFormatTOML {
		return ".shadersplit.toml"
	}
	return ".shadersplit.yml"
}
