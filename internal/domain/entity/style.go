package entity

// Alignment positions subtitle text horizontally within the video frame.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// VerticalAnchor positions subtitle text vertically within the video frame.
type VerticalAnchor string

const (
	AnchorTop    VerticalAnchor = "top"
	AnchorMiddle VerticalAnchor = "middle"
	AnchorBottom VerticalAnchor = "bottom"
)

// SubtitleStyle is the full style attribute set the configuration panel
// edits. A profile stores a snapshot of this struct; the JSON tags define
// both the database serialization and the export envelope format.
type SubtitleStyle struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontWeight int     `json:"fontWeight"`
	Italic     bool    `json:"italic"`

	// Colors are #RRGGBB or #RRGGBBAA.
	Color        string  `json:"color"`
	OutlineColor string  `json:"outlineColor"`
	OutlineWidth float64 `json:"outlineWidth"`
	ShadowColor  string  `json:"shadowColor"`
	ShadowOffset float64 `json:"shadowOffset"`
	ShadowBlur   float64 `json:"shadowBlur"`

	BackgroundColor   string  `json:"backgroundColor"`
	BackgroundOpacity float64 `json:"backgroundOpacity"` // 0..1

	LetterSpacing float64        `json:"letterSpacing"`
	LineHeight    float64        `json:"lineHeight"`
	Alignment     Alignment      `json:"alignment"`
	Anchor        VerticalAnchor `json:"anchor"`

	// MarginVertical is a percentage of the frame height.
	MarginVertical float64 `json:"marginVertical"`
	UppercaseAll   bool    `json:"uppercaseAll"`
}

// DefaultSubtitleStyle returns the style applied to new projects before the
// user has touched the panel.
func DefaultSubtitleStyle() SubtitleStyle {
	return SubtitleStyle{
		FontFamily:        "Poppins, sans-serif",
		FontSize:          42,
		FontWeight:        700,
		Color:             "#FFFFFF",
		OutlineColor:      "#000000",
		OutlineWidth:      2,
		ShadowColor:       "#000000",
		ShadowOffset:      2,
		ShadowBlur:        4,
		BackgroundColor:   "#000000",
		BackgroundOpacity: 0,
		LineHeight:        1.2,
		Alignment:         AlignCenter,
		Anchor:            AnchorBottom,
		MarginVertical:    8,
	}
}
