package service

// Service is the lifecycle contract for long-lived subsystems: the haptic loop,
// the event pump, audio output, the spectator feed
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration handed over by the hub
//  3. Start() - launch goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies names services that must Init and Start before this one
	Dependencies() []string

	// Init configures the service; args are service-specific
	Init(args ...any) error

	// Start begins operation, called after every service has initialized
	Start() error

	// Stop halts operation and releases resources
	// Must be idempotent
	Stop() error
}
