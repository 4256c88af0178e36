package glitch

// Catalog returns every transform in display order. Keep this list in sync
// when adding a transform; ids must be unique across categories.
func Catalog() []*Transform {
	return []*Transform{
		// pixel format
		rgbRGBAConfusion,
		bgrSwap,
		channelOrder,
		endianSwap,
		bitDepth,
		signedUnsigned,
		gammaMismatch,
		premultipliedAlpha,
		blockCompression,
		yuvMismatch,
		floatErrors,

		// memory layout
		strideMismatch,
		bmpPadding,
		alignmentOffset,
		mortonSwizzle,
		tileSwizzle,

		// coordinates
		offByOne,
		coordinateFlip,
		uvWrap,
		aspectRatio,
		textureFiltering,
		halfTexel,
		mipmapLOD,
	}
}
