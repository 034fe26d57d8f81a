package version

import "fmt"

const (
	VERSION_MAJOR = 0
	VERSION_MINOR = 4
	VERSION_MICRO = 0
)

// Commit is set at build time with -ldflags "-X RestoPos/internal/version.Commit=...".
var Commit = ""

var version *Version

type Version struct {
	Major int
	Minor int
	Micro int
}

func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	if Commit != "" {
		s += "+" + Commit
	}
	return s
}

// UserAgent is sent with every backend request.
func (v *Version) UserAgent() string {
	return "RestoPos/" + v.String()
}

func GetVersion() *Version {
	return version
}

func init() {
	version = &Version{
		Major: VERSION_MAJOR,
		Minor: VERSION_MINOR,
		Micro: VERSION_MICRO,
	}
}
