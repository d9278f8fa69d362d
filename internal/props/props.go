package props

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/atomic-reactor/arcli/internal/config"
	"github.com/atomic-reactor/arcli/internal/hook"
	"github.com/atomic-reactor/arcli/internal/logging"
	"github.com/atomic-reactor/arcli/internal/prompt"
	"github.com/atomic-reactor/arcli/internal/runtime"
	"github.com/atomic-reactor/arcli/internal/spinner"
	"github.com/atomic-reactor/arcli/internal/tmpl"
	"github.com/atomic-reactor/arcli/internal/userdata"
)

// Props is the shared context.
type Props struct {
	// Cwd is the directory commands act on.
	Cwd string
	// Root is the directory the arcli binary lives in.
	Root string
	// Home is the arcli home directory (~/.arcli).
	Home    string
	Version string

	// Config is the layered configuration: defaults, project core, home,
	// project.
	Config config.Config
	// Settings edits individual keys of the home config file.
	Settings *config.Settings
	// FirstRun is set when the home config was created by this process.
	FirstRun bool

	Prompt    prompt.Prompter
	Spinner   spinner.Spinner
	Log       *slog.Logger
	Templates *tmpl.Renderer
	Fs        afero.Fs
	HTTP      *http.Client
	Hooks     *hook.Registry
	Proc      runtime.Runner

	Out io.Writer
	Err io.Writer

	closers []io.Closer
}

// Option customizes New.
type Option func(*Props)

// WithCwd sets the working directory.
func WithCwd(dir string) Option { return func(p *Props) { p.Cwd = dir } }

// WithHome sets the arcli home directory.
func WithHome(dir string) Option { return func(p *Props) { p.Home = dir } }

// WithRoot sets the install directory.
func WithRoot(dir string) Option { return func(p *Props) { p.Root = dir } }

// WithFs sets the filesystem every step writes through.
func WithFs(fs afero.Fs) Option { return func(p *Props) { p.Fs = fs } }

// WithPrompt sets the prompt handle.
func WithPrompt(pr prompt.Prompter) Option { return func(p *Props) { p.Prompt = pr } }

// WithSpinner sets the progress handle.
func WithSpinner(s spinner.Spinner) Option { return func(p *Props) { p.Spinner = s } }

// WithLogger sets the logger. Without it New logs to Err and the home log
// file.
func WithLogger(l *slog.Logger) Option { return func(p *Props) { p.Log = l } }

// WithConfig skips config loading and uses c as the effective config.
func WithConfig(c config.Config) Option { return func(p *Props) { p.Config = c } }

// WithHTTPClient sets the HTTP client for network steps.
func WithHTTPClient(c *http.Client) Option { return func(p *Props) { p.HTTP = c } }

// WithVersion sets the reported build version.
func WithVersion(v string) Option { return func(p *Props) { p.Version = v } }

// WithOutput sets the writers for command output and diagnostics.
func WithOutput(out, errOut io.Writer) Option {
	return func(p *Props) {
		p.Out = out
		p.Err = errOut
	}
}

// WithProc sets the process runner.
func WithProc(r runtime.Runner) Option { return func(p *Props) { p.Proc = r } }

// New builds Props. The home directory layout is created on first run,
// with the default configuration written to its config file.
func New(opts ...Option) (*Props, error) {
	p := &Props{
		Fs:      afero.NewOsFs(),
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: "dev",
		Hooks:   hook.NewRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.resolvePaths(); err != nil {
		return nil, err
	}

	created, err := userdata.Ensure(p.Fs, nil, p.Home, config.DefaultsJSON())
	if err != nil {
		return nil, fmt.Errorf("initializing %s: %w", p.Home, err)
	}
	p.FirstRun = created

	if p.Config == nil {
		if p.Config, err = config.Load(p.Fs, p.Cwd, userdata.ConfigPath(p.Home)); err != nil {
			return nil, err
		}
	}
	if p.Settings, err = config.NewSettings(p.Fs, userdata.ConfigPath(p.Home)); err != nil {
		return nil, err
	}

	if p.Log == nil {
		// lumberjack bypasses Fs, so file logging only happens on the OS filesystem.
		var file string
		if _, ok := p.Fs.(*afero.OsFs); ok {
			file = userdata.LogFile(p.Home)
		}
		l, err := logging.New(logging.Options{
			Console: p.Err,
			File:    file,
			Debug:   logging.DebugEnabled(),
		})
		if err != nil {
			return nil, err
		}
		p.Log = l.Logger
		p.closers = append(p.closers, l)
	}
	if p.HTTP == nil {
		h, err := p.Config.HTTP()
		if err != nil {
			return nil, err
		}
		p.HTTP = &http.Client{Timeout: h.Timeout}
	}
	if p.Prompt == nil {
		p.Prompt = prompt.NewSurvey()
	}
	if p.Spinner == nil {
		p.Spinner = spinner.New(p.Err)
	}
	if p.Templates == nil {
		p.Templates = tmpl.New()
	}
	if p.Proc == nil {
		p.Proc = &runtime.OS{Stdout: p.Out, Stderr: p.Err}
	}

	p.Log.Debug("props ready", "cwd", p.Cwd, "home", p.Home, "first_run", p.FirstRun)
	return p, nil
}

func (p *Props) resolvePaths() error {
	var err error
	if p.Cwd == "" {
		if p.Cwd, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}
	if p.Home == "" {
		if p.Home, err = userdata.Root(); err != nil {
			return err
		}
	}
	if p.Root == "" {
		if exe, err := os.Executable(); err == nil {
			p.Root = filepath.Dir(exe)
		}
	}
	return nil
}

// Path resolves parts against Cwd. An absolute first part is used as-is.
func (p *Props) Path(parts ...string) string {
	if len(parts) > 0 && filepath.IsAbs(parts[0]) {
		return filepath.Join(parts...)
	}
	return filepath.Join(append([]string{p.Cwd}, parts...)...)
}

// Close releases resources New opened.
func (p *Props) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	p.closers = nil
	return first
}
