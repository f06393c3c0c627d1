package loaders

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML decodes a scene description written in TOML. The document uses
// the same keys as the YAML format; unknown keys are rejected.
func ParseTOML(reader io.Reader) (*SceneFile, error) {
	var file SceneFile
	if err := toml.NewDecoder(reader).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode TOML scene: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}
