// The main package for the hcp-harvester executable.
package main

import (
	"github.com/adpillai/hcp-harvester/cmd"
)

func main() {
	cmd.Execute()
}
