// Package thumbnails counts Plex metadata bundles that are missing their
// preview-thumbnail index (Contents/Indexes/index-sd.bif).
//
// The Plex Media Server keeps bundles two levels below Media/localhost, in
// hash-prefix folders. Scanner walks exactly those two levels; anything else is
// skipped rather than treated as an error.
package thumbnails
