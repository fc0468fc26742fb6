package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile is a named output format, e.g. a [tsv] section with a tab delimiter
type Profile struct {
	Name      string
	Delimiter string
	Extension string
}

type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

var delimiterEscapes = strings.NewReplacer(`\t`, "\t", `\n`, "\n")

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	// Delimiters such as ; and # must not be read as inline comments
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return Profile{}, fmt.Errorf("profile %s not found", name)
	}

	delimiter := delimiterEscapes.Replace(section.Key("delimiter").String())
	if section.HasKey("delimiter") && delimiter == "" {
		return Profile{}, fmt.Errorf("profile %s has an empty delimiter", name)
	}

	return Profile{
		Name:      name,
		Delimiter: delimiter,
		Extension: section.Key("extension").String(),
	}, nil
}
