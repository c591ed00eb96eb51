package render

// BlendMode packs a color operation in the low nibble and the channels it touches in the high one
type BlendMode uint8

const (
	opAlpha uint8 = 0x01
	opAdd   uint8 = 0x02
)

const (
	flagBg uint8 = 0x10
	flagFg uint8 = 0x20
)

const (
	// BlendAlphaFg mixes the foreground toward the source, keeping the background
	BlendAlphaFg = BlendMode(opAlpha | flagFg)
	// BlendAddFg and BlendAddBg saturate one channel set toward the source
	BlendAddFg = BlendMode(opAdd | flagFg)
	BlendAddBg = BlendMode(opAdd | flagBg)
)
