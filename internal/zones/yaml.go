package zones

import (
	"image"

	"gopkg.in/yaml.v3"
)

type yamlRect struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type yamlZone struct {
	Index   int      `yaml:"index"`
	Enabled *bool    `yaml:"enabled"`
	Rect    yamlRect `yaml:"rect"`
}

type yamlFile struct {
	Zones []yamlZone `yaml:"zones"`
}

// ParseYAML reads the native zone list format:
//
//	zones:
//	  - index: 0
//	    rect: {x: 10, y: 10, width: 50, height: 50}
//	  - index: 1
//	    enabled: false
//	    rect: {x: 70, y: 10, width: 50, height: 50}
//
// Zones are enabled unless the file says otherwise.
func ParseYAML(data []byte) ([]Zone, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	zs := make([]Zone, len(file.Zones))
	for i, y := range file.Zones {
		enabled := true
		if y.Enabled != nil {
			enabled = *y.Enabled
		}
		zs[i] = Zone{
			Index:   y.Index,
			Enabled: enabled,
			Rect:    image.Rect(y.Rect.X, y.Rect.Y, y.Rect.X+y.Rect.Width, y.Rect.Y+y.Rect.Height),
		}
	}
	return zs, nil
}
