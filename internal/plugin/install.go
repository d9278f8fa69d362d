package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/command"
	"github.com/atomic-reactor/arcli/internal/fetch"
	"github.com/atomic-reactor/arcli/internal/manifest"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/registry"
	"github.com/atomic-reactor/arcli/internal/runtime"
)

// installer is the state one install sequence shares between its steps.
type installer struct {
	app     project.App
	spec    string
	name    string
	want    string
	plugin  *registry.Plugin
	version *registry.Version
	dir     string
	tmp     string
	archive string
}

// InstallActions returns the sequence installing the plugin named by the
// "name" param ("name" or "name@version").
func InstallActions() *action.Map {
	in := &installer{}
	return action.NewMap(
		action.Entry{Name: "init", Step: in.init},
		action.Entry{Name: "check", Step: in.check},
		action.Entry{Name: "fetch", Step: in.fetch},
		action.Entry{Name: "version", Step: in.resolve},
		action.Entry{Name: "download", Step: in.download},
		action.Entry{Name: "verify", Step: in.verify},
		action.Entry{Name: "extract", Step: in.extract},
		action.Entry{Name: "move", Step: in.move},
		action.Entry{Name: "static", Step: in.static},
		action.Entry{Name: "register", Step: in.register},
		action.Entry{Name: "postinstall", Step: in.postinstall},
		action.Entry{Name: "npm", Step: in.npm},
		action.Entry{Name: "complete", Step: in.complete},
	)
}

func (in *installer) init(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	app, err := project.Detect(p.Fs, p.Cwd)
	if err != nil {
		return nil, err
	}
	in.app = app

	in.spec = strings.TrimSpace(opts.Params.String("name"))
	if in.spec == "" {
		return nil, action.Fatal("input plugin name")
	}
	in.name, in.want = registry.ParseSpec(in.spec)
	return in.name, nil
}

func (in *installer) check(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	if in.app == "" {
		return nil, action.Fatalf("Current working directory %s is not an Actinium or Reactium project", p.Cwd)
	}
	modules := in.app.ModulesDir(p.Cwd)
	if err := p.Fs.MkdirAll(modules, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", modules, err)
	}
	in.dir = filepath.Join(modules, slug(in.name))
	in.tmp = in.dir + "_tmp"
	return string(in.app), nil
}

func (in *installer) fetch(ctx context.Context, opts *action.Options) (any, error) {
	opts.Message(fmt.Sprintf("Fetching %s...", in.name))
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	plugin, err := client.Get(ctx, in.name)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, action.Fatalf("plugin %s not found: %w", in.name, err)
	}
	if err != nil {
		return nil, err
	}
	in.plugin = plugin
	return plugin.VersionList(), nil
}

func (in *installer) resolve(_ context.Context, opts *action.Options) (any, error) {
	v, err := in.plugin.Resolve(in.want)
	if err != nil {
		return nil, action.Fatalf("resolving %s: %w", in.spec, err)
	}
	in.version = v

	constraint := v.Reactium
	if in.app == project.Actinium {
		constraint = v.Actinium
	}
	if current := frameworkVersion(opts, in.app); current != "" && constraint != "" {
		if ok, err := registry.Satisfies(current, constraint); err == nil && !ok && opts.Props.Log != nil {
			opts.Props.Log.Warn(fmt.Sprintf("%s@%s expects %s %s, project has %s",
				in.name, v.Version, in.app, constraint, current))
		}
	}
	return v.Version, nil
}

func (in *installer) download(ctx context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message(fmt.Sprintf("Downloading %s@%s...", in.name, in.version.Version))

	if err := p.Fs.MkdirAll(in.tmp, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", in.tmp, err)
	}
	file := in.version.File.Name
	if file == "" {
		file = slug(in.name) + ".tgz"
	}
	in.archive = filepath.Join(in.tmp, filepath.Base(file))

	n, err := fetch.NewDownloader(p.HTTP, p.Fs).Download(ctx, in.version.File.URL, in.archive)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (in *installer) verify(_ context.Context, opts *action.Options) (any, error) {
	if err := fetch.Verify(opts.Props.Fs, in.archive, in.version.Checksum); err != nil {
		return nil, fmt.Errorf("verifying %s@%s: %w", in.name, in.version.Version, err)
	}
	return in.version.Checksum, nil
}

func (in *installer) extract(_ context.Context, opts *action.Options) (any, error) {
	opts.Message(fmt.Sprintf("Extracting %s@%s...", in.name, in.version.Version))
	if err := fetch.Extract(opts.Props.Fs, in.archive, in.tmp, 0); err != nil {
		return nil, err
	}
	return in.tmp, nil
}

func (in *installer) move(_ context.Context, opts *action.Options) (any, error) {
	fs := opts.Props.Fs
	opts.Message("Copying files...")

	if err := fs.Remove(in.archive); err != nil {
		return nil, fmt.Errorf("removing %s: %w", in.archive, err)
	}
	if err := fs.RemoveAll(in.dir); err != nil {
		return nil, fmt.Errorf("removing %s: %w", in.dir, err)
	}
	if err := fetch.CopyDir(fs, in.tmp, in.dir); err != nil {
		return nil, err
	}
	if err := fs.RemoveAll(in.tmp); err != nil {
		return nil, fmt.Errorf("removing %s: %w", in.tmp, err)
	}

	npmDir := filepath.Join(in.dir, "_npm")
	if err := fs.MkdirAll(npmDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", npmDir, err)
	}
	pkg := filepath.Join(in.dir, project.PackageFile)
	if ok, _ := afero.Exists(fs, pkg); ok {
		if err := fetch.CopyFile(fs, pkg, filepath.Join(npmDir, project.PackageFile)); err != nil {
			return nil, err
		}
	}
	return in.dir, nil
}

// static moves every file below an "assets" directory of the plugin into
// _static/assets, then prunes directories left empty.
func (in *installer) static(_ context.Context, opts *action.Options) (any, error) {
	fs := opts.Props.Fs
	staticDir := filepath.Join(in.dir, "_static")

	moves := map[string]string{}
	var order []string
	err := afero.Walk(fs, in.dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && p == staticDir {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(in.dir, p)
		if err != nil {
			return err
		}
		if sub, ok := belowAssets(rel); ok {
			moves[p] = filepath.Join(staticDir, "assets", sub)
			order = append(order, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", in.dir, err)
	}

	for _, src := range order {
		dest := moves[src]
		if err := fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := fs.Rename(src, dest); err != nil {
			return nil, fmt.Errorf("moving %s: %w", src, err)
		}
	}
	if err := pruneEmpty(fs, in.dir); err != nil {
		return nil, err
	}
	return len(order), nil
}

// belowAssets returns the part of rel after its last "assets" segment.
func belowAssets(rel string) (string, bool) {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if parts[i] == "assets" {
			return filepath.Join(parts[i+1:]...), true
		}
	}
	return "", false
}

func (in *installer) register(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message("Registering plugin...")

	path := p.Path(project.PackageFile)
	pkg, err := project.ReadPackage(p.Fs, path)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		pkg = project.Package{}
	}
	pkg.SetDependency(in.app.DependencyKey(), in.name, in.version.Version)
	if err := pkg.Write(p.Fs, path); err != nil {
		return nil, err
	}
	return path, nil
}

// postinstall runs the arcli-install.yaml manifests shipped in the plugin
// as one sequence. Step names are postinstall_<i>_<step>.
func (in *installer) postinstall(ctx context.Context, opts *action.Options) (any, error) {
	if opts.Params.Bool("no-npm") {
		return nil, nil
	}
	fs := opts.Props.Fs
	paths, err := manifest.Find(fs, in.dir, manifest.InstallFile)
	if err != nil || len(paths) == 0 {
		return nil, err
	}

	steps := action.NewMap()
	for i, path := range paths {
		m, err := manifest.ReadInstall(fs, path)
		if err != nil {
			return nil, err
		}
		steps = action.Merge(steps, command.Steps(m.Steps, filepath.Dir(path), fmt.Sprintf("postinstall_%d_", i)))
	}

	opts.Params.Set("pluginDirectory", in.dir)
	res, err := action.Run(ctx, steps, opts)
	if err != nil {
		return nil, err
	}
	return res.Names(), nil
}

func (in *installer) npm(ctx context.Context, opts *action.Options) (any, error) {
	if opts.Params.Bool("no-npm") || opts.Params.Bool("unattended") {
		return nil, nil
	}
	p := opts.Props
	p.Spinner.Persist("+", fmt.Sprintf("Installing %s dependencies...", in.name))

	pkg := strings.Join([]string{string(in.app) + "_modules", slug(in.name), "_npm"}, "/")
	_, err := p.Proc.Run(ctx, runtime.Cmd{Name: "npm", Args: []string{"install", pkg}, Dir: p.Cwd})
	p.Spinner.Start("")
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func (in *installer) complete(_ context.Context, opts *action.Options) (any, error) {
	installed := in.name + "@" + in.version.Version
	opts.Props.Spinner.Succeed("Installed " + installed)
	return installed, nil
}

// slug makes a plugin name safe as a directory name; scoped names keep
// their "@" and "/".
func slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '@', r == '-', r == '/':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, name)
}

func frameworkVersion(opts *action.Options, app project.App) string {
	p := opts.Props
	pkg, err := project.ReadPackage(p.Fs, p.Path(project.PackageFile))
	if err != nil || pkg == nil {
		return ""
	}
	section, _ := pkg[string(app)].(map[string]any)
	v, _ := section["version"].(string)
	return v
}

func pruneEmpty(fs afero.Fs, dir string) error {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		if err := pruneEmpty(fs, sub); err != nil {
			return err
		}
		if empty, _ := afero.IsEmpty(fs, sub); empty {
			if err := fs.Remove(sub); err != nil {
				return fmt.Errorf("removing %s: %w", sub, err)
			}
		}
	}
	return nil
}
