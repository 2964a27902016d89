package main

import (
	"github.com/mj1618/ifwm/cmd"
	_ "github.com/mj1618/ifwm/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
