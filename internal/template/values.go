package template

import (
	"fmt"
	"time"
)

// Values holds the process configuration a placeholder set is assembled from.
// Required fields must be set by the caller; optional fields receive defaults
// immediately before substitution.
type Values struct {
	PkgName      string // required: package/project name
	Team         string // required: registry namespace
	BaseImage    string // required: container base image
	ImageVersion string // required: image version tag

	AuthorName    string // default: "Unknown Author"
	AuthorEmail   string // default: "unknown@example.com"
	ContainerUser string // default: "analyst"
	Today         string // default: today's date (YYYY-MM-DD)
	InstallExtra  string // default: "" (generated install commands)
}

// Known placeholder names, the only ${...} tokens that are substituted.
const (
	VarPkgName       = "PKG_NAME"
	VarTeam          = "TEAM"
	VarBaseImage     = "BASE_IMAGE"
	VarImageVersion  = "IMAGE_VERSION"
	VarAuthorName    = "AUTHOR_NAME"
	VarAuthorEmail   = "AUTHOR_EMAIL"
	VarContainerUser = "CONTAINER_USER"
	VarToday         = "TODAY"
	VarInstallExtra  = "INSTALL_EXTRA"
)

// placeholderSet resolves every known variable, applying defaults for unset
// optionals. It fails if any required value is still undefined, so
// substitution is never attempted with unresolvable variables.
func (v Values) placeholderSet() (map[string]string, error) {
	required := map[string]string{
		VarPkgName:      v.PkgName,
		VarTeam:         v.Team,
		VarBaseImage:    v.BaseImage,
		VarImageVersion: v.ImageVersion,
	}
	for name, val := range required {
		if val == "" {
			return nil, fmt.Errorf("placeholder %s is not resolvable: value is unset", name)
		}
	}

	authorName := v.AuthorName
	if authorName == "" {
		authorName = "Unknown Author"
	}
	authorEmail := v.AuthorEmail
	if authorEmail == "" {
		authorEmail = "unknown@example.com"
	}
	containerUser := v.ContainerUser
	if containerUser == "" {
		containerUser = "analyst"
	}
	today := v.Today
	if today == "" {
		today = time.Now().Format("2006-01-02")
	}

	return map[string]string{
		VarPkgName:       v.PkgName,
		VarTeam:          v.Team,
		VarBaseImage:     v.BaseImage,
		VarImageVersion:  v.ImageVersion,
		VarAuthorName:    authorName,
		VarAuthorEmail:   authorEmail,
		VarContainerUser: containerUser,
		VarToday:         today,
		VarInstallExtra:  v.InstallExtra,
	}, nil
}
