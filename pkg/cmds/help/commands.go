package help

import (
	"fmt"

	"github.com/devtalks/devlink.go/pkg/engine/dispatch"
)

var (
	// HelpCmd lists all registered commands.
	HelpCmd = dispatch.Entry{
		Name: "help",
		Help: "Show this help",
		Func: func(c *dispatch.Call) (string, error) {
			c.Println("Commands:")
			for _, e := range c.Table().Entries() {
				synopsis := e.Name
				if e.Usage != "" {
					synopsis += " " + e.Usage
				}
				c.Println(fmt.Sprintf("  %-20s- %s", synopsis, e.Help))
			}
			return "", nil
		},
	}
)

func init() {
	dispatch.Register(&HelpCmd)
}
