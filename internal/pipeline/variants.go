package pipeline

import "fmt"

// Variant is one of the fixed set of container image flavors, all built from
// the same build definition with different base images.
type Variant int

const (
	// VariantShell is the shell-only environment (r-ver).
	VariantShell Variant = iota
	// VariantIDE is the interactive IDE environment (rstudio).
	VariantIDE
	// VariantPublish is the publishing-oriented environment (verse).
	VariantPublish
)

// AllVariants is the fixed "all" set, in build order.
var AllVariants = []Variant{VariantShell, VariantIDE, VariantPublish}

// Name returns the user-facing variant name.
func (v Variant) Name() string {
	switch v {
	case VariantShell:
		return "r-ver"
	case VariantIDE:
		return "rstudio"
	case VariantPublish:
		return "verse"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Suffix returns the image-name suffix for the variant.
func (v Variant) Suffix() string {
	switch v {
	case VariantShell:
		return "shell"
	case VariantIDE:
		return "rstudio"
	case VariantPublish:
		return "verse"
	}
	return fmt.Sprintf("variant%d", int(v))
}

// BaseImage returns the variant's container base image.
func (v Variant) BaseImage() string {
	switch v {
	case VariantShell:
		return "rocker/r-ver"
	case VariantIDE:
		return "rocker/rstudio"
	case VariantPublish:
		return "rocker/verse"
	}
	return ""
}

// Description returns the variant's human-readable purpose.
func (v Variant) Description() string {
	switch v {
	case VariantShell:
		return "shell-only environment"
	case VariantIDE:
		return "interactive IDE environment"
	case VariantPublish:
		return "publishing-oriented environment"
	}
	return ""
}

// ParseVariant resolves a user-supplied variant name.
func ParseVariant(name string) (Variant, error) {
	for _, v := range AllVariants {
		if v.Name() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q (choose one of: %s, %s, %s)",
		name, VariantShell.Name(), VariantIDE.Name(), VariantPublish.Name())
}

// Repository returns the image repository name for a variant:
// <team>/<project>core-<suffix>.
func (v Variant) Repository(team, project string) string {
	return fmt.Sprintf("%s/%score-%s", team, project, v.Suffix())
}
