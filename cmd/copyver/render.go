package main

import (
	"github.com/walteh/copyver/pkg/log"
	"github.com/walteh/copyver/pkg/operation"
)

// renderError prints err with a headline for its kind. A missing record also
// gets a config init hint.
func renderError(u *log.UserLogger, configPath string, err error) {
	switch operation.KindOf(err) {
	case operation.KindConfigNotFound:
		u.LogValidation(false, "No config found", err)
		if configPath != "" {
			u.LogHint("Create one with: copyver --config " + configPath + " config init")
		} else {
			u.LogHint("Create one with: copyver config init")
		}
	case operation.KindConfigIncomplete:
		u.LogValidation(false, "Config is incomplete", err)
	case operation.KindSourceNotFound:
		u.LogValidation(false, "Source file not found", err)
	case operation.KindDestinationUnwritable:
		u.LogValidation(false, "Cannot write to destination", err)
	default:
		u.LogValidation(false, "Command failed", err)
	}
}
