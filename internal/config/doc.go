// Package config manages user configuration via Viper, stored at
// ~/.labforge/config.yaml. It supplies the defaults that pre-populate a
// pipeline run: team, registry account, build mode, dotfiles path, author
// identity, and the image version tag.
package config
