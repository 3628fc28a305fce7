// Package imaging provides the image I/O and pixel operations around face
// cropping: decoding with EXIF auto-orientation, metadata, grayscale
// histogram equalization, rectangular crops, encoding by file extension and
// dominant color analysis.
//
// Decoding, cropping and encoding are delegated to
// github.com/disintegration/imaging; grayscale conversion and histograms to
// github.com/anthonynsimon/bild; color space conversion to
// github.com/lucasb-eyer/go-colorful.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
// Regions are half-open: Min is inclusive, Max is exclusive.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions are stateless
// and never modify their input images.
//
// # Supported Formats
//
// Decoding and encoding support JPEG, PNG, GIF, TIFF and BMP. The output
// format is chosen from the file extension.
package imaging
