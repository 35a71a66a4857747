package storage

// Record is one locate outcome to persist. Payload is written as indented
// JSON; Preview, when present, as a standalone HTML page.
type Record struct {
	SourceURL string
	Query     string
	Payload   any
	Preview   string
}

// Persistence

type WriteResult struct {
	hash        string // identity (filename without extension)
	resultPath  string
	previewPath string
}

func NewWriteResult(
	hash string,
	resultPath string,
	previewPath string,
) WriteResult {
	return WriteResult{
		hash:        hash,
		resultPath:  resultPath,
		previewPath: previewPath,
	}
}

func (w *WriteResult) Hash() string {
	return w.hash
}

func (w *WriteResult) ResultPath() string {
	return w.resultPath
}

// PreviewPath is empty when the record had no preview.
func (w *WriteResult) PreviewPath() string {
	return w.previewPath
}
