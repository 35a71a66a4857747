package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rohmanhakim/nl-locator/internal/metadata"
	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/nl-locator/pkg/fileutil"
	"github.com/rohmanhakim/nl-locator/pkg/hashutil"
)

/*
Responsibilities
- Persist locate results as JSON
- Persist the highlighted preview as HTML
- Ensure deterministic filenames

Output Characteristics
- <hash>.json and <hash>.html side by side
- hash = first 12 hex characters of blake3(source URL, query)
- Overwrite-safe reruns
*/

const hashLen = 12

type Sink interface {
	Write(outputDir string, record Record) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
	}
}

// RecordHash names the files of a record.
func RecordHash(sourceURL, query string) string {
	return hashutil.Short(hashutil.Fingerprint(sourceURL, query), hashLen)
}

func (s *LocalSink) Write(
	outputDir string,
	record Record,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, record)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, record.SourceURL),
				metadata.NewAttr(metadata.AttrQuery, record.Query),
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}

	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, record.SourceURL),
		metadata.NewAttr(metadata.AttrQuery, record.Query),
	}
	s.metadataSink.RecordArtifact(metadata.ArtifactResult, writeResult.ResultPath(), attrs)
	if writeResult.PreviewPath() != "" {
		s.metadataSink.RecordArtifact(metadata.ArtifactPreview, writeResult.PreviewPath(), attrs)
	}
	return writeResult, nil
}

func write(outputDir string, record Record) (WriteResult, *StorageError) {
	hash := RecordHash(record.SourceURL, record.Query)

	payload, err := json.MarshalIndent(record.Payload, "", "  ")
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
		}
	}

	resultPath, writeErr := fileutil.WriteFileAtomic(outputDir, hash+".json", append(payload, '\n'))
	if writeErr != nil {
		return WriteResult{}, fromFileError(writeErr, outputDir)
	}

	var previewPath string
	if record.Preview != "" {
		previewPath, writeErr = fileutil.WriteFileAtomic(outputDir, hash+".html", []byte(record.Preview))
		if writeErr != nil {
			return WriteResult{}, fromFileError(writeErr, outputDir)
		}
	}

	return NewWriteResult(hash, resultPath, previewPath), nil
}

func fromFileError(err failure.ClassifiedError, outputDir string) *StorageError {
	cause := ErrCauseWriteFailure
	retryable := false
	var fileErr *fileutil.FileError
	if errors.As(err, &fileErr) {
		retryable = fileErr.Retryable
		if fileErr.Cause == fileutil.ErrCausePathError {
			cause = ErrCausePathError
		}
	}
	return &StorageError{
		Message:   err.Error(),
		Retryable: retryable,
		Cause:     cause,
		Path:      outputDir,
	}
}
