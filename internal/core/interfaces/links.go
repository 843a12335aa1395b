package interfaces

// PathCanonicalizer resolves a path to its canonical absolute form with all
// symlinks and relative segments resolved
type PathCanonicalizer interface {
	Canonicalize(path string) (string, error)
}

// LinkedFileOpener hands a validated path to the platform's default handler
// without waiting for the spawned process
type LinkedFileOpener interface {
	OpenDetached(path string) error
}
