package ir

// Theme is the font and color configuration applied uniformly across a rendered deck.
// Colors are hex strings, with or without a leading '#'.
type Theme struct {
	FontName  string `yaml:"font_name"`
	FontColor string `yaml:"font_color"`
	BgColor   string `yaml:"bg_color"`
}

// WithDefaults fills empty theme fields from def.
func (t Theme) WithDefaults(def Theme) Theme {
	if t.FontName == "" {
		t.FontName = def.FontName
	}
	if t.FontColor == "" {
		t.FontColor = def.FontColor
	}
	if t.BgColor == "" {
		t.BgColor = def.BgColor
	}
	return t
}
