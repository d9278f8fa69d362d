package manifest

// File names looked up by the loaders.
const (
	CommandFile = "command.yaml"
	InstallFile = "arcli-install.yaml"
)

// Command is a command.yaml manifest.
type Command struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Help        string   `yaml:"help,omitempty" json:"help,omitempty"`
	Flags       []Flag   `yaml:"flags,omitempty" json:"flags,omitempty"`
	Prompts     []Prompt `yaml:"prompts,omitempty" json:"prompts,omitempty"`
	Steps       []Step   `yaml:"steps" json:"steps"`

	// Path is the file the manifest was read from.
	Path string `yaml:"-" json:"-"`
}

// Flag is a string flag bound to a param of the same name.
type Flag struct {
	Name        string `yaml:"name" json:"name"`
	Short       string `yaml:"short,omitempty" json:"short,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Prompt asks for a param when no flag supplied it.
type Prompt struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Pattern     string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Step is one declarative action. Exactly one of Run, Template, Mkdir,
// Remove or Message is set.
type Step struct {
	Name     string   `yaml:"name" json:"name"`
	Run      string   `yaml:"run,omitempty" json:"run,omitempty"`
	Args     []string `yaml:"args,omitempty" json:"args,omitempty"`
	Dir      string   `yaml:"dir,omitempty" json:"dir,omitempty"`
	Template string   `yaml:"template,omitempty" json:"template,omitempty"`
	Dest     string   `yaml:"dest,omitempty" json:"dest,omitempty"`
	Mkdir    string   `yaml:"mkdir,omitempty" json:"mkdir,omitempty"`
	Remove   string   `yaml:"remove,omitempty" json:"remove,omitempty"`
	Message  string   `yaml:"message,omitempty" json:"message,omitempty"`
}

// Kind returns which operation the step performs.
func (s Step) Kind() string {
	switch {
	case s.Run != "":
		return "run"
	case s.Template != "":
		return "template"
	case s.Mkdir != "":
		return "mkdir"
	case s.Remove != "":
		return "remove"
	case s.Message != "":
		return "message"
	}
	return ""
}

// Install is an arcli-install.yaml manifest shipped inside a plugin.
type Install struct {
	Steps []Step `yaml:"steps" json:"steps"`

	Path string `yaml:"-" json:"-"`
}
