package config

import "path/filepath"

// DirName is the name of the workspace directory holding svcparams files.
const DirName = ".svcparams"

// SettingsFileName is the settings file inside the workspace directory.
const SettingsFileName = "settings.yaml"

// Paths captures resolved locations for a workspace.
type Paths struct {
	Dir          string // path to .svcparams directory
	SettingsFile string // path to .svcparams/settings.yaml
}

// PathsFor returns the Paths of the workspace directory dir.
func PathsFor(dir string) Paths {
	return Paths{
		Dir:          dir,
		SettingsFile: filepath.Join(dir, SettingsFileName),
	}
}

// ParamsFile resolves the params.file setting against the workspace
// directory. Absolute settings are returned unchanged.
func (p Paths) ParamsFile(s Store) string {
	name, ok := s.Get(KeyParamsFile)
	if !ok || name == "" {
		name = DefaultParamsFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}
