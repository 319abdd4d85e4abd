// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Time-of-flight solver across all conics, trajectory sampling, Bodies tab
// 0.2.0 - Universal-variable propagator replaces the fixed-step integrator
// 0.1.0 - Initial release: state/element conversion, headless CLI
