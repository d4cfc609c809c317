package main

import (
	"github.com/devtalks/devlink.go/pkg/cli/sh"

	_ "github.com/devtalks/devlink.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
