package domain

// BootstrapData describes the root administrator seeded into an empty
// store on first run.
type BootstrapData struct {
	AdminUsername string
	AdminPassword string
}
