package pipeline

import (
	"fmt"
	"strings"
)

// BuildMode is the named tier controlling how many supporting packages are
// installed into an image.
type BuildMode int

const (
	// ModeFast installs only the essentials.
	ModeFast BuildMode = iota
	// ModeStandard installs the common analysis toolset.
	ModeStandard
	// ModeComprehensive installs the full publishing toolset.
	ModeComprehensive
)

// Name returns the user-facing mode name, also passed as the BUILD_MODE
// build argument.
func (m BuildMode) Name() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeStandard:
		return "standard"
	case ModeComprehensive:
		return "comprehensive"
	}
	return fmt.Sprintf("BuildMode(%d)", int(m))
}

// packages returns the supporting packages installed for the mode. Tiers are
// cumulative: each mode includes everything from the tier below.
func (m BuildMode) packages() []string {
	fast := []string{"renv"}
	standard := append(fast, "dplyr", "ggplot2", "testthat")
	comprehensive := append(standard, "quarto", "rmarkdown", "knitr")

	switch m {
	case ModeFast:
		return fast
	case ModeStandard:
		return standard
	case ModeComprehensive:
		return comprehensive
	}
	return nil
}

// InstallCommand generates the install command substituted into the build
// definition's INSTALL_EXTRA placeholder.
func (m BuildMode) InstallCommand() string {
	pkgs := m.packages()
	quoted := make([]string, len(pkgs))
	for i, p := range pkgs {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	return fmt.Sprintf(`RUN R -q -e "install.packages(c(%s))"`, strings.Join(quoted, ", "))
}

// ParseBuildMode resolves a user-supplied mode name.
func ParseBuildMode(name string) (BuildMode, error) {
	switch name {
	case ModeFast.Name():
		return ModeFast, nil
	case ModeStandard.Name():
		return ModeStandard, nil
	case ModeComprehensive.Name():
		return ModeComprehensive, nil
	}
	return 0, fmt.Errorf("unknown build mode %q (choose one of: %s, %s, %s)",
		name, ModeFast.Name(), ModeStandard.Name(), ModeComprehensive.Name())
}
