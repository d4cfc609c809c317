// Package all pulls in every shell command provider.
package all

import (
	_ "github.com/devtalks/devlink.go/pkg/cli/cmds/device"
)
