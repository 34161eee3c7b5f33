package mods

// Project represents the configuration of a subc project: the project file
// together with the directory it was loaded from.  Projects without a project
// file get a single default profile.
type Project struct {
	// Name is the name of the project.
	Name string

	// Root is the path to the directory enclosing the project file.
	Root string

	// DefaultProfile is the name of the profile used when none is selected.
	// This may be empty.
	DefaultProfile string

	// Profiles is the list of build profiles in the order they are declared.
	Profiles []*BuildProfile

	// Warnings lists the problems found while loading the project which do not
	// prevent it from being used.
	Warnings []string
}

// BuildProfile represents the profile that the compiler will use to build.
type BuildProfile struct {
	// Name is the name of the profile.
	Name string

	// OutputPath is the path to the final output file.  Relative paths are
	// relative to the project root.
	OutputPath string

	// OutputFormat is the type of output the compiler should produce.  This
	// should be one of the enumerated formats (prefixed `Format`).
	OutputFormat int

	// TargetTriple is the LLVM target triple to compile for.  If this is empty,
	// the backend's default target is used.
	TargetTriple string

	// Clang is the LLVM driver executable used to produce native output.
	Clang string

	// ClangFlags are extra flags passed to the LLVM driver.
	ClangFlags []string
}

// Available Output Formats
const (
	FormatBin    = iota // Executable
	FormatASM           // Assembly
	FormatLLVM          // LLVM
	FormatObject        // Unlinked Object File
)

// formatNames maps TOML format name strings to enumerated format values.
var formatNames = map[string]int{
	"bin":  FormatBin,
	"asm":  FormatASM,
	"llvm": FormatLLVM,
	"obj":  FormatObject,
}

// FormatFromName returns the output format with the given name.
func FormatFromName(name string) (int, bool) {
	format, ok := formatNames[name]
	return format, ok
}

// FormatExtension returns the default file extension for an output format.
func FormatExtension(format int) string {
	switch format {
	case FormatASM:
		return ".s"
	case FormatLLVM:
		return ".ll"
	case FormatObject:
		return ".o"
	default:
		return ""
	}
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (project name, profile name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
