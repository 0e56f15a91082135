// ABOUTME: Version constants for the pcmcast player
// ABOUTME: Identifies the product in logs and CLI output
package version

const (
	// Version is the software version.
	Version = "0.1.0"

	// Product is the product name.
	Product = "pcmcast"

	// Manufacturer identifies the project.
	Manufacturer = "pcmcast project"
)
