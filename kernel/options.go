// SPDX-License-Identifier: MIT

// Package kernel: functional configuration for Engine.
package kernel

// ---------- Internal panic messages (no magic strings) ----------

const panicKernelNil = "kernel: WithKernel: kernel must be non-nil"

// Option mutates Engine options.
type Option func(*Options)

// Options stores the effective Engine configuration.
type Options struct {
	kernel Kernel // ColMajor{} (gonum) when unset
}

// WithKernel replaces the BLAS backend. Panics on nil.
func WithKernel(k Kernel) Option {
	if k == nil {
		panic(panicKernelNil)
	}

	return func(o *Options) { o.kernel = k }
}

// gatherOptions applies setters on top of the defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{kernel: ColMajor{}}
	for _, set := range user {
		set(&o)
	}

	return o
}
