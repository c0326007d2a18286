package parser

// Progress receives ingestion progress. It is purely cosmetic: ingestion
// never fails or blocks because of it.
type Progress interface {
	// Start is called once with the total number of lines to process.
	Start(total int)

	// Increment is called once per line, parsed or not.
	Increment()

	// Finish is called after the last line.
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int)  {}
func (noopProgress) Increment() {}
func (noopProgress) Finish()    {}
