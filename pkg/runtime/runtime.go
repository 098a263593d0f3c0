package runtime

import (
	"fmt"

	"github.com/adrg/xdg"
)

const (
	XDGName = "roster"
)

// StateFile returns the path of filename in roster's XDG state directory,
// creating parent directories as needed.
func StateFile(filename string) (string, error) {
	return xdg.StateFile(fmt.Sprintf("%s/%s", XDGName, filename))
}

// LogFile is where the interactive UI writes its log.
func LogFile() (string, error) {
	return StateFile(XDGName + ".log")
}
