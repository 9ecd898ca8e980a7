package core

import "errors"

var (
	// ErrInvalidInput reports malformed input: bad board dimensions, out-of-range or
	// non-adjacent swap coordinates, or a grid that does not fit the engine.
	// Nothing is mutated when it is returned.
	ErrInvalidInput = errors.New("match3: invalid input")

	// ErrGenerationExhausted reports that no match-free board with a legal move was found
	// within MaxGenerateAttempts. It is carried in GenerateReport; the board returned
	// alongside it is still usable.
	ErrGenerationExhausted = errors.New("match3: board generation exhausted")
)
