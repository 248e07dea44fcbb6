package cache

// Keyer generates cache keys for rendered artifacts.
type Keyer interface {
	// ReportKey keys a text report of the input with the given hash.
	ReportKey(inputHash string, opts ReportKeyOpts) string
	// DOTKey keys a DOT or SVG diagram of the input with the given hash.
	DOTKey(inputHash string, opts DOTKeyOpts) string
}

// ReportKeyOpts holds the options that change a text report.
type ReportKeyOpts struct {
	Format      string `json:"format"`
	MaxChildren int    `json:"max_children"`
	Wrap        string `json:"wrap"`
	Select      string `json:"select,omitempty"`
	Radius      int    `json:"radius,omitempty"`
	Labels      bool   `json:"labels,omitempty"`
	Styled      bool   `json:"styled,omitempty"`
}

// DOTKeyOpts holds the options that change a diagram.
type DOTKeyOpts struct {
	Format   string `json:"format"`
	Output   string `json:"output"` // "dot" or "svg"
	Detailed bool   `json:"detailed,omitempty"`
	Select   string `json:"select,omitempty"`
	Radius   int    `json:"radius,omitempty"`
	Labels   bool   `json:"labels,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey returns "report:" followed by a hash of the input hash and opts.
func (DefaultKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return hashKey("report", inputHash, opts)
}

// DOTKey returns "dot:" followed by a hash of the input hash and opts.
func (DefaultKeyer) DOTKey(inputHash string, opts DOTKeyOpts) string {
	return hashKey("dot", inputHash, opts)
}
