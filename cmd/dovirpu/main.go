package main

import (
	"os"

	"github.com/quietvoid/dovi-tool-sub001/cmd/dovirpu/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
