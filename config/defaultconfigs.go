package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Colors: ThemeColors{
			BoardBg:          180,
			BoardBgHighlight: 179,
			Text:             232,
			Line:             94,
			StarPoint:        88,
			BlackStone:       232,
			WhiteStone:       255,
			ErrorFg:          255,
			ErrorBg:          124,
			LoadingFg:        232,
			LoadingBg:        250,
		},
		Symbols: ThemeSymbols{
			BlackStone:   '●',
			WhiteStone:   '○',
			Intersection: '┼',
			StarPoint:    '╋',
			HorizLine:    '─',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			Bin:  "gnugo",
			Args: nil,
		},
	}
}
