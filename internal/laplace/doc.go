// Package laplace provides the numerical core for axisymmetric
// Young-Laplace droplet profiles.
//
// The package defines the fundamental types for integrating the droplet
// shape equations arclength-by-arclength from the apex:
//
//   - [State]: vector representing the dimensionless profile state
//   - [System]: interface for arclength-parameterized ODE systems
//   - [YoungLaplace]: the Bashforth-Adams form of the shape equations
//   - [Tracer]: marches a system from the apex to a stop condition
//
// # Example
//
//	ode := laplace.NewYoungLaplace(bond)
//	tracer := laplace.NewTracer(integrators.NewRK45())
//	prof, err := tracer.Trace(ctx, ode, laplace.ContactAngleReached(ca), cfg)
//
// # Thread Safety
//
// Tracer instances are NOT thread-safe. Independent traces must each use
// their own Tracer; profiles returned by Trace are owned by the caller.
package laplace
