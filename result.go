package diorama

// ResultKind identifies which outcome a RenderResult carries. Callers are
// expected to switch over every kind rather than probe optional fields.
type ResultKind uint8

const (
	// ResultFilePath means the render was written to a (non-image) file,
	// such as an encoded video.
	ResultFilePath ResultKind = iota
	// ResultImagePath means the render was written to an image file.
	ResultImagePath
	// ResultBuffer means the render is held as encoded bytes in memory.
	ResultBuffer
	// ResultFallbackSample means rendering was skipped and the caller
	// should use the named pre-rendered sample instead.
	ResultFallbackSample
)

// RenderResult is a tagged variant over the four ways a render can conclude.
// Construct one with FileResult, ImageResult, BufferResult, or
// FallbackResult; inspect it with Kind and the matching accessor.
type RenderResult struct {
	kind   ResultKind
	path   string
	buf    []byte
	sample string
}

// FileResult wraps a path to a rendered non-image file.
func FileResult(path string) RenderResult {
	return RenderResult{kind: ResultFilePath, path: path}
}

// ImageResult wraps a path to a rendered image file.
func ImageResult(path string) RenderResult {
	return RenderResult{kind: ResultImagePath, path: path}
}

// BufferResult wraps encoded render output held in memory.
func BufferResult(buf []byte) RenderResult {
	return RenderResult{kind: ResultBuffer, buf: buf}
}

// FallbackResult wraps a reference to a pre-rendered fallback sample.
func FallbackResult(sample string) RenderResult {
	return RenderResult{kind: ResultFallbackSample, sample: sample}
}

// Kind returns which outcome this result carries.
func (r RenderResult) Kind() ResultKind {
	return r.kind
}

// FilePath returns the file path and whether this result carries one.
func (r RenderResult) FilePath() (string, bool) {
	return r.path, r.kind == ResultFilePath
}

// ImagePath returns the image path and whether this result carries one.
func (r RenderResult) ImagePath() (string, bool) {
	return r.path, r.kind == ResultImagePath
}

// Buffer returns the in-memory bytes and whether this result carries them.
func (r RenderResult) Buffer() ([]byte, bool) {
	return r.buf, r.kind == ResultBuffer
}

// FallbackSample returns the fallback sample reference and whether this
// result carries one.
func (r RenderResult) FallbackSample() (string, bool) {
	return r.sample, r.kind == ResultFallbackSample
}
