package config

import (
	"strings"
	"time"
)

// Registry is the plugin registry section.
type Registry struct {
	Server       string `json:"server"`
	App          string `json:"app"`
	SessionToken string `json:"session_token"`
}

// HTTP is the network section.
type HTTP struct {
	Timeout time.Duration `json:"timeout"`
}

// Framework locates a framework release archive.
type Framework struct {
	Repo string `json:"repo"`
}

// App is one runnable application of a multi-app project.
type App struct {
	Name      string `json:"name"`
	Dir       string `json:"dir"`
	Framework string `json:"framework"`
	PortMin   int    `json:"port_min"`
	PortMax   int    `json:"port_max"`
}

// Project is the dev-environment section.
type Project struct {
	Script string   `json:"script"`
	Args   []string `json:"args"`
	Apps   []App    `json:"apps"`
}

// Registry decodes the registry section.
func (c Config) Registry() (Registry, error) {
	var r Registry
	err := c.Decode("registry", &r)
	return r, err
}

// HTTP decodes the http section.
func (c Config) HTTP() (HTTP, error) {
	var h HTTP
	err := c.Decode("http", &h)
	return h, err
}

// Framework decodes the section named after a framework ("reactium",
// "actinium").
func (c Config) Framework(name string) (Framework, error) {
	var f Framework
	err := c.Decode(name, &f)
	return f, err
}

// Project decodes the project section.
func (c Config) Project() (Project, error) {
	var p Project
	err := c.Decode("project", &p)
	return p, err
}

// CommandDirs returns the configured manifest directories with [home],
// [cwd] and [root] tokens replaced.
func (c Config) CommandDirs(home, cwd, root string) []string {
	r := strings.NewReplacer("[home]", home, "[HOME]", home, "[cwd]", cwd, "[CWD]", cwd, "[root]", root, "[ROOT]", root)
	var out []string
	for _, d := range c.Strings("commands") {
		out = append(out, r.Replace(d))
	}
	return out
}
