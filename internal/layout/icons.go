package layout

// Icon is a named pictogram with a terminal glyph.
type Icon struct {
	Name  string
	Glyph string
}

// Icons is the fixed, ordered icon pool.
var Icons = []Icon{
	{Name: "message-square", Glyph: "❝"},
	{Name: "target", Glyph: "◎"},
	{Name: "lightbulb", Glyph: "✦"},
	{Name: "star", Glyph: "★"},
	{Name: "rocket", Glyph: "➚"},
	{Name: "shield", Glyph: "◈"},
	{Name: "globe", Glyph: "◍"},
	{Name: "heart", Glyph: "♥"},
	{Name: "check-circle", Glyph: "✔"},
	{Name: "users", Glyph: "☷"},
	{Name: "bar-chart", Glyph: "▥"},
	{Name: "trending-up", Glyph: "↗"},
	{Name: "layers", Glyph: "≣"},
	{Name: "pie-chart", Glyph: "◔"},
	{Name: "arrow-up-right", Glyph: "➹"},
	{Name: "briefcase", Glyph: "▤"},
}

// IconIndex is (slide*5 + bullet) mod len(Icons).
func IconIndex(slide, bullet int) int {
	n := len(Icons)
	i := (slide*5 + bullet) % n
	if i < 0 {
		i += n
	}
	return i
}

// IconFor returns the icon for a bullet on a slide.
func IconFor(slide, bullet int) Icon {
	return Icons[IconIndex(slide, bullet)]
}
