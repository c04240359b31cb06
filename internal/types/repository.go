package types

// RepositoryRef identifies a hosted repository. Both fields are non-empty for any
// ref produced by the locator.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String returns the ref as "owner/name".
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// EntryType is the kind of a repository tree entry.
type EntryType string

// Tree entry kinds as reported by the hosting API.
const (
	EntryBlob EntryType = "blob"
	EntryTree EntryType = "tree"
)

// TreeEntry is one item of a recursive repository tree listing.
type TreeEntry struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
}

// CodeSample is a truncated source file selected for a judgment prompt.
type CodeSample struct {
	FilePath   string `json:"file_path"`
	Content    string `json:"content"`
	SourceLink string `json:"source_link"`
}

// Link returns the traceability pair for the sample.
func (s CodeSample) Link() SampleLink {
	return SampleLink{FilePath: s.FilePath, FileURL: s.SourceLink}
}

// SampleLink points a caller back to a sampled file.
type SampleLink struct {
	FilePath string `json:"file_path"`
	FileURL  string `json:"file_url"`
}
