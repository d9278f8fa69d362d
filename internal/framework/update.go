package framework

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/fetch"
	"github.com/atomic-reactor/arcli/internal/project"
)

// Layout of an update run, relative to the working directory.
const (
	CoreDir   = ".core"
	UpdateDir = "tmp/update"
	BackupDir = ".BACKUP/update"
)

// UpdateActions returns the sequence replacing the project's .core with
// the latest release of app. The "core" param limits the update to .core
// alone, with no backup and no package.json changes.
func UpdateActions(app project.App, now func() time.Time) *action.Map {
	if now == nil {
		now = time.Now
	}
	return action.NewMap(
		action.Entry{Name: "download", Step: download(app)},
		action.Entry{Name: "unzip", Step: unzip(app, UpdateDir)},
		action.Entry{Name: "backup", Step: backup(now)},
		action.Entry{Name: "core", Step: core},
		action.Entry{Name: "package", Step: pkg(app)},
		action.Entry{Name: "cleanup", Step: cleanup},
	)
}

func backup(now func() time.Time) action.Step {
	return func(_ context.Context, opts *action.Options) (any, error) {
		p := opts.Props
		opts.Message("backing up core...")

		stamp := strconv.FormatInt(now().UnixMilli(), 10)
		dir := p.Path(BackupDir)
		if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
		if err := fetch.CopyFile(p.Fs, p.Path(project.PackageFile), filepath.Join(dir, stamp+".package.json")); err != nil {
			return nil, err
		}
		coreZip := filepath.Join(dir, stamp+".core.zip")
		if err := fetch.ZipDir(p.Fs, p.Path(CoreDir), coreZip); err != nil {
			return nil, err
		}
		if err := project.Ignore(p.Fs, p.Cwd, ".BACKUP"); err != nil {
			return nil, err
		}
		return coreZip, nil
	}
}

func core(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message("updating core...")

	dst := p.Path(CoreDir)
	src := p.Path(UpdateDir, CoreDir)
	if err := p.Fs.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("emptying %s: %w", dst, err)
	}
	if err := p.Fs.MkdirAll(dst, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dst, err)
	}
	if err := fetch.CopyDir(p.Fs, src, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// pkg merges the dependencies of the release's package.json into the
// project's and records the release version under "<app>.version".
func pkg(app project.App) action.Step {
	return func(_ context.Context, opts *action.Options) (any, error) {
		p := opts.Props
		opts.Message("updating package.json...")

		path := p.Path(project.PackageFile)
		cur, err := project.ReadPackage(p.Fs, path)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			cur = project.Package{}
		}
		next, err := project.ReadPackage(p.Fs, p.Path(UpdateDir, project.PackageFile))
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}

		cur.MergeDependencies(next)
		if v := cast.ToString(next["version"]); v != "" {
			section := cast.ToStringMap(cur[string(app)])
			if section == nil {
				section = map[string]any{}
			}
			section["version"] = v
			cur[string(app)] = section
		}
		if err := cur.Write(p.Fs, path); err != nil {
			return nil, err
		}
		return path, nil
	}
}
