package ui

// DisplayConfig is the persisted "Display" settings group. Nil fields are
// left untouched when applied.
type DisplayConfig struct {
	Enabled      *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	LowContrast  *int  `json:"loctr,omitempty" yaml:"loctr,omitempty"`
	HighContrast *int  `json:"hictr,omitempty" yaml:"hictr,omitempty"`
	Screensaver  *int  `json:"screensaver,omitempty" yaml:"screensaver,omitempty"`
}

// ConfigGroup is the settings group name.
const ConfigGroup = "Display"

// Merge returns c with every field set in o overriding it.
func (c DisplayConfig) Merge(o DisplayConfig) DisplayConfig {
	if o.Enabled != nil {
		c.Enabled = o.Enabled
	}
	if o.LowContrast != nil {
		c.LowContrast = o.LowContrast
	}
	if o.HighContrast != nil {
		c.HighContrast = o.HighContrast
	}
	if o.Screensaver != nil {
		c.Screensaver = o.Screensaver
	}
	return c
}

// Empty reports whether no field is set.
func (c DisplayConfig) Empty() bool {
	return c.Enabled == nil && c.LowContrast == nil && c.HighContrast == nil && c.Screensaver == nil
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func ptr[T any](v T) *T { return &v }

// Bool, Int help build a DisplayConfig literal.
func Bool(v bool) *bool { return ptr(v) }
func Int(v int) *int    { return ptr(v) }
