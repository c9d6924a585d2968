// Package sim implements the two finite-difference transport demonstrations
// served by the API: 1-D pure advection and 2-D coupled advection-diffusion.
// The solvers are deliberately small, explicit, and deterministic; they exist
// to produce plottable series for the frontend, not to be a PDE framework.
//
// # Grids
//
// Each axis is a uniform mesh of n points spanning [0, 1] inclusive of both
// endpoints, so the spacing is 1/(n-1). Topology is periodic: the neighbor
// left of index 0 is index n-1. The 2-D field is stored row-major with y as
// the slow axis:
//
//	u[j*nx+i]  =  value at (x_i, y_j)
//
// which is also the order in which 2-D snapshots are serialized.
//
// # Scheme
//
// Advection uses the first-order upwind (donor-cell) update. The upwind
// direction is fixed once per run from the sign of the velocity component;
// the hot loops never branch per cell. With a non-negative speed the update
// differences against the lower-index neighbor, with a negative speed against
// the higher-index neighbor, wrapping at the periodic seam.
//
// The 1-D timestep locks the Courant number at exactly 1 (dt = dx/|c|, or
// dt = dx when c = 0), so the profile translates one cell per step with no
// numerical diffusion. The 2-D timestep is the most restrictive of three
// limits, fixed for the whole run:
//
//	dt_adv  = min(dx/max(|cx|, 1e-6), dy/max(|cy|, 1e-6))
//	dt_diff = 0.25 * min(dx², dy²) / max(D, 1e-10)
//	dt      = min(dt_adv, dt_diff, 0.002)
//
// # Pass ordering
//
// A 2-D step composes three passes in a fixed order: x-advection, then
// y-advection, then diffusion. Every pass reads the frozen pre-step field and
// accumulates its term into a working copy, so the decrements and the
// diffusion increment compound in exactly that order at floating-point
// precision. Reordering the passes changes low-order bits of the results.
//
// Diffusion applies the 5-point Laplacian, scaled by D*dt/(dx*dy), to
// interior points only. Edge rows and columns receive advective transport but
// no diffusion; the periodic wrap applies to advection alone. The asymmetry
// is intentional and kept: downstream visualizations were built against these
// exact fields.
//
// # Sampling
//
// A run of numSteps steps records a deep copy of the field at step 0 and at
// every step divisible by outputInterval, giving
//
//	floor(numSteps/outputInterval) + 1
//
// snapshots. There is no implicit final snapshot: numSteps=50 with
// outputInterval=7 samples steps 0, 7, 14, 21, 28, 35, 42, 49.
//
// # Failure
//
// Construction fails with ErrGridTooSmall when any axis has fewer than two
// points; Run fails with ErrNumSteps for negative step counts and
// ErrOutputInterval for strides below 1. If the
// field picks up a NaN or Inf mid-run (possible with adversarial parameters
// such as negative diffusion), the run fails whole with ErrNonFinite wrapped
// with the offending step; partial series are never returned.
package sim
