// Package version carries the build identity printed by the shell banner
// and the version command.
package version

import "fmt"

const (
	Project = "STM32 UART shell"
	Author  = "Santiago Rincon"

	Major = 1
	Minor = 0
	Date  = "20250912"
)

// String returns the dotted version, e.g. "1.0.20250912".
func String() string {
	return fmt.Sprintf("%d.%d.%s", Major, Minor, Date)
}
