package application

const (
	// Collision probing during code issuance gives up after this many
	// consecutive occupied candidates instead of looping forever.
	maxCodeAttempts = 100

	defaultCodeLength = 4
)
