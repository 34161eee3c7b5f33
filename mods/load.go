package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alexandercampbell/rust-cc/common"
	"github.com/pelletier/go-toml"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Project  *tomlProject   `toml:"project"`
	Profiles []*tomlProfile `toml:"profiles"`
}

// tomlProject represents the project table as it is encoded in TOML
type tomlProject struct {
	Name           string `toml:"name"`
	DefaultProfile string `toml:"default-profile,omitempty"`
	Version        string `toml:"subc-version,omitempty"`
}

// tomlProfile represents a profile as it encoded in TOML
type tomlProfile struct {
	Name         string   `toml:"name"`
	Format       string   `toml:"format"`
	OutputPath   string   `toml:"output"`
	TargetTriple string   `toml:"target-triple,omitempty"`
	Clang        string   `toml:"clang,omitempty"`
	ClangFlags   []string `toml:"clang-flags,omitempty"`
}

// defaultClang is the LLVM driver used by profiles that do not name one.
const defaultClang = "clang"

// LoadProject loads and validates the project in the directory `dir`.  If the
// directory contains no project file, a default project named `defaultName`
// is returned whose only profile builds an executable called `defaultName`.
func LoadProject(dir, defaultName string) (*Project, error) {
	buff, err := ioutil.ReadFile(filepath.Join(dir, common.ProjectFileName))
	if errors.Is(err, os.ErrNotExist) {
		return defaultProject(dir, defaultName), nil
	} else if err != nil {
		return nil, err
	}

	return ParseProject(dir, buff)
}

// ParseProject parses and validates the contents of a project file.  `dir` is
// the directory the project file was loaded from.
func ParseProject(dir string, buff []byte) (*Project, error) {
	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", common.ProjectFileName, err)
	}

	if tpf.Project == nil {
		return nil, fmt.Errorf("%s must contain a [project] table", common.ProjectFileName)
	}

	proj := &Project{Root: dir}
	if err := validateProject(proj, tpf.Project); err != nil {
		return nil, err
	}

	if len(tpf.Profiles) == 0 {
		return nil, fmt.Errorf("project `%s` must provide at least one build profile", proj.Name)
	}

	for _, tprof := range tpf.Profiles {
		prof, err := convertProfile(tprof)
		if err != nil {
			return nil, fmt.Errorf("%s in project `%s`", err.Error(), proj.Name)
		}

		for _, other := range proj.Profiles {
			if other.Name == prof.Name {
				return nil, fmt.Errorf("project `%s` defines profile `%s` multiple times", proj.Name, prof.Name)
			}
		}

		proj.Profiles = append(proj.Profiles, prof)
	}

	if proj.DefaultProfile != "" && proj.lookupProfile(proj.DefaultProfile) == nil {
		return nil, fmt.Errorf("default profile `%s` of project `%s` does not exist", proj.DefaultProfile, proj.Name)
	}

	return proj, nil
}

// defaultProject returns the project used when there is no project file.
func defaultProject(dir, name string) *Project {
	return &Project{
		Name: name,
		Root: dir,
		Profiles: []*BuildProfile{{
			Name:         "default",
			OutputPath:   name,
			OutputFormat: FormatBin,
			Clang:        defaultClang,
		}},
	}
}

// validateProject checks that the top level project contents are valid
func validateProject(proj *Project, tproj *tomlProject) error {
	if tproj.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.Root)
	}

	if !IsValidIdentifier(tproj.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if tproj.Version != "" && tproj.Version != common.SubcVersion {
		proj.Warnings = append(
			proj.Warnings,
			fmt.Sprintf("version of project `%s` (v%s) does not match current subc version (v%s)", tproj.Name, tproj.Version, common.SubcVersion),
		)
	}

	proj.Name = tproj.Name
	proj.DefaultProfile = tproj.DefaultProfile
	return nil
}

// convertProfile converts a TOML build profile into a `*BuildProfile`
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	if !IsValidIdentifier(tprof.Name) {
		return nil, fmt.Errorf("profile name `%s` must be a valid identifier", tprof.Name)
	}

	if tprof.OutputPath == "" {
		return nil, fmt.Errorf("profile `%s` must specify an output path", tprof.Name)
	}

	if tprof.Format == "" {
		return nil, fmt.Errorf("profile `%s` must specify an output format", tprof.Name)
	}

	newProfile := &BuildProfile{
		Name:         tprof.Name,
		OutputPath:   tprof.OutputPath,
		TargetTriple: tprof.TargetTriple,
		Clang:        tprof.Clang,
		ClangFlags:   tprof.ClangFlags,
	}

	if formatVal, ok := formatNames[tprof.Format]; ok {
		newProfile.OutputFormat = formatVal
	} else {
		return nil, fmt.Errorf("%s is not a valid output format", tprof.Format)
	}

	if newProfile.Clang == "" {
		newProfile.Clang = defaultClang
	}

	return newProfile, nil
}

// SelectProfile selects the build profile to build with.  If `name` is empty,
// the project's default profile is selected, or the first profile if it has
// no default.  The returned profile is a copy which may be freely modified.
func (p *Project) SelectProfile(name string) (*BuildProfile, error) {
	if name == "" {
		name = p.DefaultProfile
	}

	var prof *BuildProfile
	if name == "" {
		prof = p.Profiles[0]
	} else if prof = p.lookupProfile(name); prof == nil {
		return nil, fmt.Errorf("project `%s` has no profile `%s`", p.Name, name)
	}

	profCopy := *prof
	profCopy.ClangFlags = append([]string(nil), prof.ClangFlags...)
	return &profCopy, nil
}

// lookupProfile returns the profile with the given name or nil.
func (p *Project) lookupProfile(name string) *BuildProfile {
	for _, prof := range p.Profiles {
		if prof.Name == name {
			return prof
		}
	}

	return nil
}

// ResolveOutputPath returns the output path of a profile relative to the
// project root.
func (p *Project) ResolveOutputPath(prof *BuildProfile) string {
	if filepath.IsAbs(prof.OutputPath) {
		return prof.OutputPath
	}

	return filepath.Join(p.Root, prof.OutputPath)
}
