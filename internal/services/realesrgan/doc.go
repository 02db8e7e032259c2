// Package realesrgan wraps the external Real-ESRGAN inference script.
//
// The Client interface lets the runner and tests substitute the process
// invocation; CLI is the production implementation that shells out to the
// python script once per image, streaming script output to an optional
// callback. GFPGAN face enhancement is a pass-through flag on Options.
package realesrgan
