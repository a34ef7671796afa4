package manifest

// Artifact kinds.
const (
	KindCleaned = "cleaned_csv"
	KindResults = "results_json"
)

// Artifact describes one output file of a run.
type Artifact struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Written bool   `json:"written"`
	Error   string `json:"error,omitempty"`
}
