package common

const (
	SrcFileExtension = ".c"
	ProjectFileName  = "subc.toml"
	SubcVersion      = "0.1.0"
)

// IntSize is the size in bytes of the only scalar type, `int`.
const IntSize = 4
