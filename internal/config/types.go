package config

// ServiceKind distinguishes how a unit's primary process behaves once
// started, mirroring the systemd service-type vocabulary this format is
// modeled on.
type ServiceKind string

const (
	// KindSimple units run in the foreground; the spawned process IS the
	// service, and the unit is Running for as long as that process lives.
	KindSimple ServiceKind = "simple"
	// KindOneshot units run to completion and then sit in Completed state;
	// they never transition back to Running.
	KindOneshot ServiceKind = "oneshot"
	// KindForking units spawn a process that detaches and re-parents; the
	// unit is considered Running once the healthcheck (if any) first passes.
	KindForking ServiceKind = "forking"
)

// RestartPolicy controls whether the lifecycle engine re-attempts a start
// after the unit's process exits on its own (as opposed to being stopped
// deliberately).
type RestartPolicy string

const (
	RestartNever     RestartPolicy = "never"
	RestartAlways    RestartPolicy = "always"
	RestartOnFailure RestartPolicy = "on-failure"
)

// HealthcheckKind selects how liveness is probed once a unit's process has
// been spawned.
type HealthcheckKind string

const (
	// HealthcheckCommand runs a ServiceCommand repeatedly until it exits 0
	// or the retry budget is exhausted.
	HealthcheckCommand HealthcheckKind = "command"
	// HealthcheckProcess checks that a named executable image is present
	// among running processes (used for Forking units with no natural
	// command-based probe).
	HealthcheckProcess HealthcheckKind = "process"
)

// ScoopRef resolves an executable via a local Scoop package installation,
// the convention most wpm units in the wild reach for on Windows.
type ScoopRef struct {
	Bucket string `json:"bucket" toml:"bucket"`
	App    string `json:"app" toml:"app"`
	Binary string `json:"binary" toml:"binary"`
}

// ResourceRef describes a remote or package-manager-resolved artifact that
// the resource store must fetch and cache before the unit can start.
type ResourceRef struct {
	URL    string    `json:"url,omitempty" toml:"url,omitempty"`
	SHA256 string    `json:"sha256,omitempty" toml:"sha256,omitempty"`
	Scoop  *ScoopRef `json:"scoop,omitempty" toml:"scoop,omitempty"`
}

// Executable names the binary a command invokes, either directly on disk or
// indirectly through the resource store.
type Executable struct {
	LocalPath string       `json:"local_path,omitempty" toml:"local_path,omitempty"`
	Resource  *ResourceRef `json:"resource,omitempty" toml:"resource,omitempty"`
}

// IsResource reports whether the executable must be resolved through the
// resource store rather than used as a literal path.
func (e Executable) IsResource() bool {
	return e.Resource != nil
}

// ServiceCommand is a single invocation used for lifecycle hooks and command
// healthchecks: an executable, its arguments, and the retry/timeout budget
// for that one invocation.
type ServiceCommand struct {
	Executable Executable        `json:"executable" toml:"executable"`
	Args       []string          `json:"args,omitempty" toml:"args,omitempty"`
	Env        map[string]string `json:"env,omitempty" toml:"env,omitempty"`
	TimeoutSec int               `json:"timeout_secs,omitempty" toml:"timeout_secs,omitempty"`
	RetryLimit int               `json:"retry_limit,omitempty" toml:"retry_limit,omitempty"`
}

// Healthcheck describes how the lifecycle engine confirms a unit is actually
// up before declaring it Running.
type Healthcheck struct {
	Kind         HealthcheckKind `json:"kind" toml:"kind"`
	Command      *ServiceCommand `json:"command,omitempty" toml:"command,omitempty"`
	ProcessImage string          `json:"process_image,omitempty" toml:"process_image,omitempty"`
	IntervalSec  int             `json:"interval_secs,omitempty" toml:"interval_secs,omitempty"`
	RetryLimit   int             `json:"retry_limit,omitempty" toml:"retry_limit,omitempty"`
}

// Service is the process-management portion of a unit: what to run, how to
// run it, its lifecycle hooks, its healthcheck, and its restart policy.
type Service struct {
	Kind             ServiceKind       `json:"kind" toml:"kind"`
	Executable       Executable        `json:"executable" toml:"executable"`
	Args             []string          `json:"args,omitempty" toml:"args,omitempty"`
	Env              map[string]string `json:"env,omitempty" toml:"env,omitempty"`
	WorkingDirectory string            `json:"working_directory,omitempty" toml:"working_directory,omitempty"`

	// Resources names additional artifacts, keyed by an arbitrary identifier,
	// that the resource store resolves alongside Executable. Args and the
	// args of hook and healthcheck commands may reference a resolved path
	// with {{ Resources.KEY }}; Env values are not expanded.
	Resources map[string]ResourceRef `json:"resources,omitempty" toml:"resources,omitempty"`

	ExecStartPre  []ServiceCommand `json:"exec_start_pre,omitempty" toml:"exec_start_pre,omitempty"`
	ExecStartPost []ServiceCommand `json:"exec_start_post,omitempty" toml:"exec_start_post,omitempty"`
	ExecStop      []ServiceCommand `json:"exec_stop,omitempty" toml:"exec_stop,omitempty"`
	ExecStopPost  []ServiceCommand `json:"exec_stop_post,omitempty" toml:"exec_stop_post,omitempty"`

	Healthcheck *Healthcheck  `json:"healthcheck,omitempty" toml:"healthcheck,omitempty"`
	Restart     RestartPolicy `json:"restart,omitempty" toml:"restart,omitempty"`
	RestartSec  int           `json:"restart_sec,omitempty" toml:"restart_sec,omitempty"`
	RestartMax  int           `json:"restart_max,omitempty" toml:"restart_max,omitempty"`

	Autostart bool `json:"autostart,omitempty" toml:"autostart,omitempty"`
}

// Unit is a single named entry in a unit directory: a service definition
// plus the dependency edges the scheduler and registry use to order it
// relative to other units.
type Unit struct {
	Name        string   `json:"name" toml:"name"`
	Description string   `json:"description,omitempty" toml:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty" toml:"depends_on,omitempty"`
	Service     Service  `json:"service" toml:"service"`

	// SourcePath is the file the unit was parsed from; populated by the
	// loader, not part of the on-disk schema.
	SourcePath string `json:"-" toml:"-"`
}
