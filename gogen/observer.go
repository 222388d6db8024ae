package gogen

import "time"

// Observer receives statistics from generation runs. Implementations must
// be cheap; they are called inline.
type Observer interface {
	// ArtifactGenerated is called once per generated type, enum or factory
	// of a successful run. Failed runs report none.
	ArtifactGenerated(role Role)

	// FileWritten is called per file handed to the sink. unchanged reports
	// that the sink kept an identical existing file.
	FileWritten(path string, unchanged bool)

	// RunFinished is called once when Generate returns.
	RunFinished(elapsed time.Duration, parserRoots int, err error)
}

// NopObserver records nothing.
type NopObserver struct{}

func (NopObserver) ArtifactGenerated(Role)                {}
func (NopObserver) FileWritten(string, bool)              {}
func (NopObserver) RunFinished(time.Duration, int, error) {}
