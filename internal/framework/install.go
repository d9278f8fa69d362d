package framework

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/fetch"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/runtime"
)

// TmpDir is the scratch directory, relative to the working directory,
// archives are downloaded and unpacked in.
const TmpDir = "tmp"

func archivePath(p string, app project.App) string {
	return filepath.Join(p, TmpDir, string(app)+".zip")
}

// download fetches the configured release archive of app.
func download(app project.App) action.Step {
	return func(ctx context.Context, opts *action.Options) (any, error) {
		p := opts.Props
		opts.Message("downloading payload, this may take awhile...")

		fw, err := p.Config.Framework(string(app))
		if err != nil {
			return nil, err
		}
		if fw.Repo == "" {
			return nil, action.Fatalf("no %s.repo configured", app)
		}
		n, err := fetch.NewDownloader(p.HTTP, p.Fs).Download(ctx, fw.Repo, archivePath(p.Cwd, app))
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

// unzip unpacks the downloaded archive into dir (relative to the working
// directory), dropping the archive's top-level folder.
func unzip(app project.App, dir string) action.Step {
	return func(_ context.Context, opts *action.Options) (any, error) {
		p := opts.Props
		opts.Message("unpacking...")
		dest := p.Path(dir)
		if err := fetch.Extract(p.Fs, archivePath(p.Cwd, app), dest, 1); err != nil {
			return nil, err
		}
		return dest, nil
	}
}

func cleanup(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message("removing temp files...")
	tmp := p.Path(TmpDir)
	if err := p.Fs.RemoveAll(tmp); err != nil {
		return nil, fmt.Errorf("removing %s: %w", tmp, err)
	}
	return nil, nil
}

func npm(app project.App) action.Step {
	return func(ctx context.Context, opts *action.Options) (any, error) {
		if opts.Params.Bool("no-npm") {
			return nil, nil
		}
		p := opts.Props
		p.Spinner.Persist("+", fmt.Sprintf("Installing %s dependencies...", title(app)))
		_, err := p.Proc.Run(ctx, runtime.Cmd{Name: "npm", Args: []string{"install"}, Dir: p.Cwd})
		p.Spinner.Start("")
		return nil, err
	}
}

// InstallActions returns the sequence installing app into the working
// directory.
func InstallActions(app project.App) *action.Map {
	return action.NewMap(
		action.Entry{Name: "download", Step: download(app)},
		action.Entry{Name: "unzip", Step: unzip(app, ".")},
		action.Entry{Name: "cleanup", Step: cleanup},
		action.Entry{Name: "npm", Step: npm(app)},
	)
}

// NonEmpty reports whether dir holds anything besides dot files.
func NonEmpty(fs afero.Fs, dir string) (bool, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), ".") {
			return true, nil
		}
	}
	return false, nil
}

func title(app project.App) string {
	s := string(app)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
