package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts (for
// example per-user server sessions) get isolated cache namespaces.
//
// Example usage:
//
//	// Per-calendar keys for a multi-calendar server
//	calKeyer := NewScopedKeyer(NewDefaultKeyer(), "cal:team-a:")
//
//	// Global keys for a single-user CLI run
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ScheduleKey generates a prefixed key for a parsed schedule.
func (k *ScopedKeyer) ScheduleKey(path string, opts ScheduleKeyOpts) string {
	return k.prefix + k.inner.ScheduleKey(path, opts)
}

// LayoutKey generates a prefixed key for a computed layout.
func (k *ScopedKeyer) LayoutKey(scheduleHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(scheduleHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
