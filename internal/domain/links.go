package domain

// LinkBundle is the set of access URLs derived from a file key and its
// storage locator. Bundles are always derived on demand, never stored.
type LinkBundle struct {
	StreamLink   string
	DownloadLink string
	PlatformLink string
}
