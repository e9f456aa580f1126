package deps

// Kind is the section a dependency was declared in.
// Kinds order by precedence: Normal first, PackageManager last.
type Kind int

const (
	Normal Kind = iota
	Development
	Build
	Peer
	PackageManager
)

var kindNames = [...]string{
	Normal:         "normal",
	Development:    "development",
	Build:          "build",
	Peer:           "peer",
	PackageManager: "package-manager",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsPeer reports whether k is Peer.
func (k Kind) IsPeer() bool { return k == Peer }
