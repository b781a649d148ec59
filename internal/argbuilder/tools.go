package argbuilder

import "github.com/ouroboros-dev/ouroboros/internal/models"

// Tools holds the executables used for conda, uv and docker commands.
type Tools struct {
	Conda  string
	UV     string
	Docker string
}

// DefaultTools resolves every tool from PATH.
func DefaultTools() Tools {
	return Tools{Conda: "conda", UV: "uv", Docker: "docker"}
}

// Field names of the small tool grammars.
const (
	FieldIndexURL = "index_url"
	FieldUpgrade  = "upgrade"

	// FieldPackages names the positional package list of install grammars
	FieldPackages = "packages"
)

// condaInstallGrammar covers the package list of `conda install`. The
// prefix and -y wrap it as `conda install -p <env> <pkg...> -y`.
var condaInstallGrammar = Grammar{
	Name:  "conda install",
	Lists: []ListField{{Field: FieldPackages, Prefix: ""}},
}

// pipInstallGrammar follows `pip install`.
var pipInstallGrammar = Grammar{
	Name:  "pip install",
	Fixed: []FixedField{{Field: FieldIndexURL, Prefix: "--index-url="}},
	Lists: []ListField{{Field: FieldPackages, Prefix: ""}},
}

// uvSyncGrammar follows `uv sync`.
var uvSyncGrammar = Grammar{
	Name:     "uv sync",
	Switches: []Switch{{Field: FieldUpgrade, Flag: "--upgrade"}},
}

// EnvPath is the relative prefix path conda uses for env.
func EnvPath(env string) string {
	return "./" + env
}

// CondaEnvCreate creates the environment from the project file.
func (t Tools) CondaEnvCreate(configPath, env string) []string {
	return []string{t.Conda, "env", "create", "--file", configPath, "--prefix", EnvPath(env)}
}

// CondaInstall installs packages into the environment. It returns nil when
// there is nothing to install.
func (t Tools) CondaInstall(env string, packages []string) []string {
	if len(models.CleanItems(packages)) == 0 {
		return nil
	}
	args, _ := condaInstallGrammar.Build(Values{
		Lists: map[string][]string{FieldPackages: packages},
	})
	argv := append([]string{t.Conda, "install", "-p", EnvPath(env)}, args...)
	return append(argv, "-y")
}

// CondaEnvExport prints the environment as YAML.
func (t Tools) CondaEnvExport(env string) []string {
	return []string{t.Conda, "env", "export", "-p", EnvPath(env)}
}

// CondaClean removes conda's package caches.
func (t Tools) CondaClean() []string {
	return []string{t.Conda, "clean", "--all", "-y"}
}

// CondaVersion prints conda's version.
func (t Tools) CondaVersion() []string {
	return []string{t.Conda, "--version"}
}

// PipInstall installs packages with the environment's interpreter. It
// returns nil when there is nothing to install.
func PipInstall(python, indexURL string, packages []string) []string {
	if len(models.CleanItems(packages)) == 0 {
		return nil
	}
	args, _ := pipInstallGrammar.Build(Values{
		Strings: map[string]string{FieldIndexURL: indexURL},
		Lists:   map[string][]string{FieldPackages: packages},
	})
	return append([]string{python, "-m", "pip", "install"}, args...)
}

// PipFreeze prints the installed packages in requirements format.
func PipFreeze(python string) []string {
	return []string{python, "-m", "pip", "freeze"}
}

// PipCachePurge empties pip's wheel cache.
func PipCachePurge(python string) []string {
	return []string{python, "-m", "pip", "cache", "purge"}
}

// UVSync syncs the project environment, optionally upgrading locked
// versions.
func (t Tools) UVSync(upgrade bool) []string {
	args, _ := uvSyncGrammar.Build(Values{Bools: map[string]bool{FieldUpgrade: upgrade}})
	return append([]string{t.UV, "sync"}, args...)
}

// UVPipFreeze prints the packages installed in the project environment.
func (t Tools) UVPipFreeze() []string {
	return []string{t.UV, "pip", "freeze"}
}

// UVCachePrune removes unused cache entries.
func (t Tools) UVCachePrune() []string {
	return []string{t.UV, "cache", "prune"}
}

// UVCacheClean removes the whole uv cache.
func (t Tools) UVCacheClean() []string {
	return []string{t.UV, "cache", "clean"}
}

// UVSelfUpdate updates uv itself.
func (t Tools) UVSelfUpdate() []string {
	return []string{t.UV, "self", "update"}
}

// UVPythonUpgrade upgrades uv-managed interpreters.
func (t Tools) UVPythonUpgrade() []string {
	return []string{t.UV, "python", "upgrade", "--preview-features", "python-upgrade"}
}

// UVVersion prints uv's version.
func (t Tools) UVVersion() []string {
	return []string{t.UV, "--version"}
}

// DockerVersion prints docker's version.
func (t Tools) DockerVersion() []string {
	return []string{t.Docker, "--version"}
}

// DockerSystemDF reports docker disk usage.
func (t Tools) DockerSystemDF() []string {
	return []string{t.Docker, "system", "df"}
}

// DockerBuilderPrune removes the whole build cache.
func (t Tools) DockerBuilderPrune() []string {
	return []string{t.Docker, "builder", "prune", "--all", "--force"}
}
