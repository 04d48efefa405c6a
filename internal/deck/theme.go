package deck

// StyleTheme is a fixed visual configuration applied uniformly across a
// rendered deck. Colors are RRGGBB hex without a leading '#'.
type StyleTheme struct {
	Name       string
	FontFamily string

	// Background fills every slide; Box fills bullet containers.
	Background string
	Box        string

	// Title, Body, and Accent are text colors.
	Title  string
	Body   string
	Accent string

	// Font sizes in points.
	TitleSize int
	BodySize  int
}

// themes is the process-wide lookup table. Read-only after init; safe for
// concurrent use. The professional palette follows the light Gamma-style
// scheme of the original deck templates.
var themes = map[Style]StyleTheme{
	StyleProfessional: {
		Name:       "professional",
		FontFamily: "Segoe UI",
		Background: "F5F7FA",
		Box:        "D4E9F7",
		Title:      "0A5C8C",
		Body:       "1F2937",
		Accent:     "3B82F6",
		TitleSize:  30,
		BodySize:   16,
	},
	StyleCasual: {
		Name:       "casual",
		FontFamily: "Trebuchet MS",
		Background: "FFF8F0",
		Box:        "FFE4C7",
		Title:      "C2410C",
		Body:       "44403C",
		Accent:     "F97316",
		TitleSize:  32,
		BodySize:   18,
	},
	StyleAcademic: {
		Name:       "academic",
		FontFamily: "Georgia",
		Background: "FAFAF7",
		Box:        "E7E5DC",
		Title:      "1E3A5F",
		Body:       "27272A",
		Accent:     "8B6F3E",
		TitleSize:  28,
		BodySize:   15,
	},
}

// ThemeFor returns the theme for a style. Unknown styles fall back to the
// professional theme so the renderer never sees a zero theme.
func ThemeFor(style Style) StyleTheme {
	if t, ok := themes[style]; ok {
		return t
	}
	return themes[StyleProfessional]
}
