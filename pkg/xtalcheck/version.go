package xtalcheck

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/bft-labs/xtalcheck/pkg/lifecycle"
	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtal"
)

// moduleVersion pairs what a module is with what the runner was built against.
type moduleVersion struct {
	name string

	// version and minCompatible are the module's own declarations.
	version       string
	minCompatible string

	// builtAgainst is the oldest version whose API the runner uses:
	// log.With arrived in 1.1.0, Backoff.Wait in lifecycle 2.0.0.
	builtAgainst string
}

func linkedModules() []moduleVersion {
	return []moduleVersion{
		{"xtal", xtal.Version, xtal.MinCompatibleVersion, "1.0.0"},
		{"log", log.Version, log.MinCompatibleVersion, "1.1.0"},
		{"lifecycle", lifecycle.Version, lifecycle.MinCompatibleVersion, "2.0.0"},
	}
}

// validateModuleVersions checks the linked modules against the runner.
func validateModuleVersions() error {
	return checkModules(linkedModules())
}

// checkModules fails when a module is older than the runner needs, or when
// the module no longer supports callers written against that version.
func checkModules(modules []moduleVersion) error {
	for _, m := range modules {
		for _, v := range []string{m.version, m.minCompatible, m.builtAgainst} {
			if !semver.IsValid("v" + v) {
				return fmt.Errorf("module %s: invalid version %q", m.name, v)
			}
		}
		if compareVersions(m.version, m.builtAgainst) < 0 {
			return fmt.Errorf("module %s version %s is older than required %s",
				m.name, m.version, m.builtAgainst)
		}
		if compareVersions(m.builtAgainst, m.minCompatible) < 0 {
			return fmt.Errorf("module %s %s dropped compatibility with %s (minimum %s)",
				m.name, m.version, m.builtAgainst, m.minCompatible)
		}
	}
	return nil
}

// compareVersions compares two "major.minor.patch" versions like semver.Compare.
func compareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}
