package ports

// Counter is a monotonically increasing event count.
type Counter interface {
	Inc()
}
