// Package config provides hierarchical configuration loading for the runnable agent.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Collision policies for output files whose derived name already exists.
const (
	CollisionOverwrite = "overwrite"
	CollisionUniquify  = "uniquify"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all runtime configuration for a single agent invocation.
type Config struct {
	Ollama    Ollama    `yaml:"ollama"`
	Output    Output    `yaml:"output"`
	Launcher  Launcher  `yaml:"launcher"`
	KeepAlive KeepAlive `yaml:"keep_alive"`
	Logging   Logging   `yaml:"logging"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Ollama holds text-generation service configuration.
type Ollama struct {
	URL     string        `yaml:"url"`     // Base URL; "/api/generate" is appended
	Model   string        `yaml:"model"`   // Model identifier sent with every prompt
	Timeout time.Duration `yaml:"timeout"` // Whole-request timeout (default: 70s)
}

// Output holds generated file configuration.
type Output struct {
	Dir         string `yaml:"dir"`
	Extension   string `yaml:"extension"`
	OnCollision string `yaml:"on_collision"` // "overwrite" | "uniquify" (default: "overwrite")
}

// App is one auxiliary application started after the file is written.
// Args may reference {output_dir} and {file}.
type App struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// Launcher holds the ordered list of applications to start.
type Launcher struct {
	Apps []App `yaml:"apps"`
}

// KeepAlive controls whether the process idles after the run so an external
// viewer can keep using the launched applications.
type KeepAlive struct {
	Enabled  bool          `yaml:"enabled"`
	Duration time.Duration `yaml:"duration"`
}

// Logging holds log output configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // "text" | "json"
	Service string `yaml:"service"`
}

// Telemetry holds OpenTelemetry export configuration.
// An empty endpoint disables exporting.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// Defaults returns a Config matching the behavior of the agent container image.
func Defaults() Config {
	return Config{
		Ollama: Ollama{
			URL:     "http://localhost:11434",
			Model:   "qwen3:0.6b",
			Timeout: 70 * time.Second,
		},
		Output: Output{
			Dir:         "/output",
			Extension:   ".py",
			OnCollision: CollisionOverwrite,
		},
		Launcher: Launcher{
			Apps: DefaultApps(),
		},
		KeepAlive: KeepAlive{
			Enabled:  true,
			Duration: time.Hour,
		},
		Logging: Logging{
			Level:   "info",
			Format:  FormatText,
			Service: "runnable-agent",
		},
		Telemetry: Telemetry{
			ServiceName: "runnable-agent",
		},
	}
}

// DefaultApps returns the desktop applications opened for the VNC session, in launch order.
func DefaultApps() []App {
	return []App{
		{Name: "xclock"},
		{Name: "gedit", Args: []string{"{file}"}},
		{Name: "xterm"},
		{Name: "pcmanfm", Args: []string{"{output_dir}"}},
	}
}
