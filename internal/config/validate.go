package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kalgynirae/netlaborious/internal/errors"
)

// Validate checks the config for errors and returns structured error
// messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but netlab only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest netlab release")
	}

	if err := validateVSphere(cfg.VSphere); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'vsphere' section in your .netlab.yaml.")
	}

	if err := validateUpload(cfg.Upload); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'upload' section in your .netlab.yaml.")
	}

	if err := validateBatch(cfg.Batch); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'batch' section in your .netlab.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .netlab.yaml.")
	}

	return nil
}

func validateVSphere(vs VSphereConfig) error {
	if vs.Port < 0 || vs.Port > 65535 {
		return fmt.Errorf("vsphere.port %d is out of range - ports go from 0 to 65535", vs.Port)
	}
	if strings.Contains(vs.Host, " ") {
		return fmt.Errorf("vsphere.host '%s' contains a space - use a hostname or SSH config alias", vs.Host)
	}
	return nil
}

func validateUpload(up UploadConfig) error {
	validProvisioning := map[string]bool{"thin": true, "thick": true, "": true}
	if !validProvisioning[up.Provisioning] {
		return fmt.Errorf("upload.provisioning '%s' isn't valid - use 'thin' or 'thick'", up.Provisioning)
	}
	return nil
}

func validateBatch(b BatchConfig) error {
	if b.Comment == "" {
		return nil
	}
	if utf8.RuneCountInString(b.Comment) != 1 {
		return fmt.Errorf("batch.comment '%s' needs to be a single character", b.Comment)
	}
	r, _ := utf8.DecodeRuneInString(b.Comment)
	switch r {
	case '\'', '"', '\\', '-':
		return fmt.Errorf("batch.comment '%s' collides with quoting or option syntax - use a character like '#' or ';'", b.Comment)
	}
	if unicode.IsSpace(r) {
		return fmt.Errorf("batch.comment can't be whitespace - use a character like '#' or ';'")
	}
	return nil
}

func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}

// CommentRune returns the configured batch comment marker as a rune,
// defaulting to '#'.
func (c *Config) CommentRune() rune {
	if c == nil || c.Batch.Comment == "" {
		return '#'
	}
	r, _ := utf8.DecodeRuneInString(c.Batch.Comment)
	return r
}
