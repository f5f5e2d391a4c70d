package fonts

import "github.com/substyle/substyle/internal/domain/entity"

// Builtin families ship with every install and need no loading. The host
// does not report per-weight availability for them, so they carry no weight
// list and fall back to the default pair.
var builtinFonts = []entity.FontDescriptor{
	{Family: "Arial", Source: entity.FontSourceBuiltin, CSSValue: "Arial, sans-serif"},
	{Family: "Helvetica", Source: entity.FontSourceBuiltin, CSSValue: "Helvetica, Arial, sans-serif"},
	{Family: "Georgia", Source: entity.FontSourceBuiltin, CSSValue: "Georgia, serif"},
	{Family: "Times New Roman", Source: entity.FontSourceBuiltin, CSSValue: "'Times New Roman', Times, serif"},
	{Family: "Courier New", Source: entity.FontSourceBuiltin, CSSValue: "'Courier New', Courier, monospace"},
}

// Curated web families, each with the weights its remote stylesheet actually
// serves. The loader never claims a weight outside these lists.
var webFonts = []entity.FontDescriptor{
	{
		Family:   "Poppins",
		Source:   entity.FontSourceWeb,
		CSSValue: "Poppins, sans-serif",
		Weights:  []int{100, 200, 300, 400, 500, 600, 700, 800, 900},
	},
	{
		Family:   "Roboto",
		Source:   entity.FontSourceWeb,
		CSSValue: "Roboto, sans-serif",
		Weights:  []int{100, 300, 400, 500, 700, 900},
	},
	{
		Family:   "Open Sans",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Open Sans', sans-serif",
		Weights:  []int{300, 400, 500, 600, 700, 800},
	},
	{
		Family:   "Montserrat",
		Source:   entity.FontSourceWeb,
		CSSValue: "Montserrat, sans-serif",
		Weights:  []int{100, 200, 300, 400, 500, 600, 700, 800, 900},
	},
	{
		Family:   "Lato",
		Source:   entity.FontSourceWeb,
		CSSValue: "Lato, sans-serif",
		Weights:  []int{100, 300, 400, 700, 900},
	},
	{
		Family:   "Oswald",
		Source:   entity.FontSourceWeb,
		CSSValue: "Oswald, sans-serif",
		Weights:  []int{200, 300, 400, 500, 600, 700},
	},
	{
		Family:   "Raleway",
		Source:   entity.FontSourceWeb,
		CSSValue: "Raleway, sans-serif",
		Weights:  []int{100, 200, 300, 400, 500, 600, 700, 800, 900},
	},
	{
		Family:   "Nunito",
		Source:   entity.FontSourceWeb,
		CSSValue: "Nunito, sans-serif",
		Weights:  []int{200, 300, 400, 500, 600, 700, 800, 900},
	},
	{
		Family:   "Merriweather",
		Source:   entity.FontSourceWeb,
		CSSValue: "Merriweather, serif",
		Weights:  []int{300, 400, 700, 900},
	},
	{
		Family:   "Playfair Display",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Playfair Display', serif",
		Weights:  []int{400, 500, 600, 700, 800, 900},
	},
	{
		Family:   "Bebas Neue",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Bebas Neue', sans-serif",
		Weights:  []int{400},
	},
	{
		Family:   "Anton",
		Source:   entity.FontSourceWeb,
		CSSValue: "Anton, sans-serif",
		Weights:  []int{400},
	},
	{
		Family:   "Archivo Black",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Archivo Black', sans-serif",
		Weights:  []int{400},
	},
	{
		Family:   "Bangers",
		Source:   entity.FontSourceWeb,
		CSSValue: "Bangers, cursive",
		Weights:  []int{400},
	},
	{
		Family:   "Permanent Marker",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Permanent Marker', cursive",
		Weights:  []int{400},
	},
	{
		Family:   "Luckiest Guy",
		Source:   entity.FontSourceWeb,
		CSSValue: "'Luckiest Guy', cursive",
		Weights:  []int{400},
	},
}
