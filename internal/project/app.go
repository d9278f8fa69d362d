package project

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// App identifies the framework a project is built on.
type App string

const (
	Reactium App = "reactium"
	Actinium App = "actinium"
)

// PackageFile is the npm manifest at a project root.
const PackageFile = "package.json"

// Detect returns the framework of the project at dir, or "" when dir is
// neither a Reactium nor an Actinium project. A .core/<app>-config.js file
// decides first; otherwise a top-level "<app>" or "<app>Dependencies" key in
// package.json does.
func Detect(fs afero.Fs, dir string) (App, error) {
	for _, app := range []App{Reactium, Actinium} {
		ok, err := afero.Exists(fs, filepath.Join(dir, ".core", string(app)+"-config.js"))
		if err != nil {
			return "", err
		}
		if ok {
			return app, nil
		}
	}

	pkg, err := ReadPackage(fs, filepath.Join(dir, PackageFile))
	if err != nil || pkg == nil {
		return "", err
	}
	for _, app := range []App{Reactium, Actinium} {
		if _, ok := pkg[string(app)]; ok {
			return app, nil
		}
		if _, ok := pkg[app.DependencyKey()]; ok {
			return app, nil
		}
	}
	return "", nil
}

// DependencyKey is the package.json key listing installed plugins.
func (a App) DependencyKey() string { return string(a) + "Dependencies" }

// ModulesDir is where plugins for a are installed under dir.
func (a App) ModulesDir(dir string) string {
	return filepath.Join(dir, string(a)+"_modules")
}
