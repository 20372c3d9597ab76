// Package imaging provides the pixel-level operations behind tray analysis.
//
// It loads and caches tray photographs, copies rectangular regions out of
// them, resizes them for display, converts them to the color representations
// the plant mask needs (white-balanced RGB and the CIE Lab a* channel) and
// renders preview images with the well grid drawn on top.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Every image this package returns has its bounds anchored at (0,0) and owns
// its pixel memory.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Loading failures and empty images are reported as *DecodeError, which
// unwraps to the underlying cause (ErrEmptyImage for a zero-area image).
package imaging
