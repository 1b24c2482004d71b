// Package pcaimage implements lossy raster compression by approximating
// each RGB channel with a low-rank principal-component reconstruction
// before the final JPEG encode.
//
// The pipeline is strictly forward: image -> three channel matrices ->
// three rank-k approximations -> reassembled image -> encoded bytes.
// A single quality percentage drives both the rank budget and the JPEG
// encoder setting.
package pcaimage
