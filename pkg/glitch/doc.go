// Package glitch is a catalog of deliberate pixel-level transformations, each
// one reproducing a classic graphics-programming bug: channel misordering,
// stride and pitch errors, coordinate flips, color-space mistakes, block
// compression, mipmap level selection and so on.
//
// Every transform is a pure function from a bitmap and a parameter set to a
// new bitmap of the same size. Transforms are registered once at init in
// [Default] and looked up by id.
//
// # Bitmaps
//
// A bitmap is an [*image.NRGBA] anchored at the origin whose Stride is
// exactly 4*width, so pixel (x,y) lives at Pix[(y*width+x)*4:][:4] in R, G,
// B, A order with straight alpha. [ToBitmap] packs any other image into that
// form. Transforms never write to their input.
//
// # Categories
//
// The catalog is split in three groups, listed in [Categories]:
//
//   - pixel-format: bytes are right but interpreted wrongly (channel order,
//     bit depth, gamma, premultiplication, Y'CbCr matrices, float encodings,
//     block compression).
//   - memory-layout: bytes are read from the wrong address (row pitch, BMP
//     padding, misalignment, Morton and tiled swizzles).
//   - coordinates: texels are sampled at the wrong place or with the wrong
//     filter (offsets, flips, UV address modes, aspect ratio, half-texel
//     centres, mipmap selection).
//
// # Parameters
//
// Each transform declares its parameters as [ParamSpec] values: numeric
// ranges, booleans and enums. [Transform.Apply] fills missing values with
// their defaults, so a nil [Values] always yields the canonical rendition of
// the bug. Values are never rejected. A value of the wrong kind falls back to
// the default, numbers are clamped into range and an unknown enum label
// selects the first option. Labels match case-insensitively. Callers that
// want strict validation do it before calling the package.
//
// Output is fully determined by the input pixels and the resolved
// parameters. Where a bug is "random", the randomness comes from a hash of
// the pixel coordinates.
//
// # Concurrency
//
// Transforms hold no shared mutable state; any number of goroutines may call
// Apply at once, even on the same source bitmap.
//
// A typical call:
//
//	out, err := glitch.Apply(img, "tile-swizzle", glitch.Values{"mode": "Row Interleave"})
//	if err != nil {
//		return err // errors.Is(err, glitch.ErrUnknownTransform)
//	}
//
// The package is silent unless a logger is installed with [SetLogger].
package glitch
