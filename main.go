package main

import (
	"github.com/byxorna/roster/cmd"
)

func main() {
	cmd.Execute()
}
