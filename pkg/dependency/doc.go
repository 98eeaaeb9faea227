// Package dependency tracks the simulated availability of an external dependency
// and exposes it to the health endpoint as the "dependency" indicator.
package dependency
