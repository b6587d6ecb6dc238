package gsm

// Config provides a SlabManagerConfig with default settings.
var Config = NewConfig()

// SlabManagerConfig is used by the slab manager when creating a new instance.
// Please see the documentation at https://github.com/replay/go-slab-manager
// for more information
type SlabManagerConfig struct {
	// InitialSlots is the number of free slots a new manager starts with.
	// Values below 1 are raised to 1.
	InitialSlots uint

	// GrowthFactor controls how much spare capacity gets reserved when
	// Acquire has to grow the backing slice because all slots are in use
	GrowthFactor float64
}

// NewConfig returns a new slab manager configuration with
// default settings. Please see the documentation at
// https://github.com/replay/go-slab-manager for
// more information.
func NewConfig() SlabManagerConfig {
	return SlabManagerConfig{
		InitialSlots: 1,
		GrowthFactor: 1.3,
	}
}
