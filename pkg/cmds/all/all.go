// Package all pulls in every built-in command provider.
package all

import (
	_ "github.com/devtalks/devlink.go/pkg/cmds/gpio"
	_ "github.com/devtalks/devlink.go/pkg/cmds/help"
	_ "github.com/devtalks/devlink.go/pkg/cmds/stream"
)
