package core

// EdgeDriver is the abstract interface to the FG feedback pin's rising-edge
// interrupt source. The target registers the actual pin interrupt and routes
// each edge to FGPulseISR; core only needs to mask and unmask the source
// around counter resets.
type EdgeDriver interface {
	// SetEnabled masks (false) or unmasks (true) the edge interrupt.
	// While masked, edges are not delivered; the hardware may latch at
	// most one pending edge across the masked window.
	SetEnabled(enabled bool)
}

// Global singleton used by core code.
var edgeDriver EdgeDriver

// SetEdgeDriver is called by target-specific code to register its driver.
func SetEdgeDriver(d EdgeDriver) {
	edgeDriver = d
}

// MustEdge returns the configured driver or panics if missing.
func MustEdge() EdgeDriver {
	if edgeDriver == nil {
		panic("edge driver not configured")
	}
	return edgeDriver
}
