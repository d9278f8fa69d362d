package plugin

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	"github.com/atomic-reactor/arcli/internal/action"
	"github.com/atomic-reactor/arcli/internal/fetch"
	"github.com/atomic-reactor/arcli/internal/project"
	"github.com/atomic-reactor/arcli/internal/registry"
	"github.com/atomic-reactor/arcli/internal/userdata"
)

type publisher struct {
	dir      string
	pkgPath  string
	pkg      project.Package
	name     string
	version  string
	archive  string
	checksum string
	file     *registry.File
}

// PublishActions returns the publish fragment. It expects a session token
// in params, so commands merge it after AuthActions.
//
// Params: "path" (plugin directory, default cwd), "bump" (major, minor or
// patch), "private".
func PublishActions() *action.Map {
	pub := &publisher{}
	return action.NewMap(
		action.Entry{Name: "validate", Step: pub.validate},
		action.Entry{Name: "bump", Step: pub.bump},
		action.Entry{Name: "pack", Step: pub.pack},
		action.Entry{Name: "checksum", Step: pub.sum},
		action.Entry{Name: "upload", Step: pub.upload},
		action.Entry{Name: "publish", Step: pub.publish},
		action.Entry{Name: "cleanup", Step: pub.cleanup},
	)
}

func (pub *publisher) validate(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	pub.dir = p.Path(opts.Params.StringOr("path", "."))
	pub.pkgPath = filepath.Join(pub.dir, project.PackageFile)

	pkg, err := project.ReadPackage(p.Fs, pub.pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, action.Fatalf("%s not found", pub.pkgPath)
	}
	pub.pkg = pkg
	pub.name = cast.ToString(pkg["name"])
	pub.version = cast.ToString(pkg["version"])
	if pub.name == "" {
		return nil, action.Fatalf("%s has no name", pub.pkgPath)
	}
	return pub.name, nil
}

// bump applies the requested version increment and refuses to publish a
// version the registry already has. package.json is only rewritten once the
// new version is known to be free.
func (pub *publisher) bump(ctx context.Context, opts *action.Options) (any, error) {
	version := pub.version
	part := opts.Params.String("bump")
	if part != "" {
		next, err := registry.Bump(pub.version, part)
		if err != nil {
			return nil, action.Fatalf("bumping version: %w", err)
		}
		version = next
	}
	if version == "" {
		return nil, action.Fatalf("%s has no version; use --bump", pub.pkgPath)
	}

	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	existing, err := client.Get(ctx, pub.name)
	switch {
	case errors.Is(err, registry.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		if _, ok := existing.Versions[version]; ok {
			return nil, action.Fatalf("%s@%s is already published; use --bump", pub.name, version)
		}
	}

	if part != "" {
		pub.pkg["version"] = version
		if err := pub.pkg.Write(opts.Props.Fs, pub.pkgPath); err != nil {
			return nil, err
		}
	}
	pub.version = version
	return pub.version, nil
}

func (pub *publisher) pack(_ context.Context, opts *action.Options) (any, error) {
	p := opts.Props
	opts.Message(fmt.Sprintf("Packing %s@%s...", pub.name, pub.version))

	base := strings.TrimPrefix(strings.ReplaceAll(slug(pub.name), "/", "-"), "@")
	pub.archive = userdata.TmpPath(p.Home, "publish", base+"-"+pub.version+".tgz")
	if err := p.Fs.MkdirAll(filepath.Dir(pub.archive), 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(pub.archive), err)
	}
	if err := fetch.TarGzDir(p.Fs, pub.dir, pub.archive, ""); err != nil {
		return nil, err
	}
	return pub.archive, nil
}

func (pub *publisher) sum(_ context.Context, opts *action.Options) (any, error) {
	sum, err := fetch.SHA256(opts.Props.Fs, pub.archive)
	if err != nil {
		return nil, err
	}
	pub.checksum = sum
	return sum, nil
}

func (pub *publisher) upload(ctx context.Context, opts *action.Options) (any, error) {
	opts.Message(fmt.Sprintf("Uploading %s...", filepath.Base(pub.archive)))
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	f, err := opts.Props.Fs.Open(pub.archive)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pub.archive, err)
	}
	defer f.Close()

	file, err := client.UploadFile(ctx, filepath.Base(pub.archive), f)
	if err != nil {
		return nil, err
	}
	pub.file = file
	return file.URL, nil
}

func (pub *publisher) publish(ctx context.Context, opts *action.Options) (any, error) {
	opts.Message(fmt.Sprintf("Publishing %s@%s...", pub.name, pub.version))
	client, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	_, err = client.Publish(ctx, registry.PublishRequest{
		Name:        pub.name,
		Version:     pub.version,
		Description: cast.ToString(pub.pkg["description"]),
		Checksum:    pub.checksum,
		File:        *pub.file,
		Private:     opts.Params.Bool("private"),
	})
	if err != nil {
		return nil, err
	}
	return pub.name + "@" + pub.version, nil
}

func (pub *publisher) cleanup(_ context.Context, opts *action.Options) (any, error) {
	if err := opts.Props.Fs.Remove(pub.archive); err != nil {
		return nil, fmt.Errorf("removing %s: %w", pub.archive, err)
	}
	return nil, nil
}
