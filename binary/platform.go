package binary

import (
	"fmt"
	"runtime"
)

// OS is the host operating system as far as release artifacts are concerned.
type OS int

// Known operating systems; only Mac and Linux have release artifacts.
const (
	Mac OS = iota + 1
	Linux
	Windows
)

// String returns the lowercase os name.
func (o OS) String() string {
	switch o {
	case Mac:
		return "macos"
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	default:
		return fmt.Sprintf("os(%d)", int(o))
	}
}

// Arch is the host cpu architecture as far as release artifacts are concerned.
type Arch int

// Known architectures; only Aarch64 and X8664 have release artifacts.
const (
	Aarch64 Arch = iota + 1
	X86
	X8664
)

// String returns the architecture as spelled in asset names.
func (a Arch) String() string {
	switch a {
	case Aarch64:
		return "aarch64"
	case X86:
		return "x86"
	case X8664:
		return "x86_64"
	default:
		return fmt.Sprintf("arch(%d)", int(a))
	}
}

// Platform holds the fragments used to name release artifacts,
// e.g. {Arch: "x86_64", OS: "unknown-linux-gnu"}.
type Platform struct {
	Arch string
	OS   string
}

// AssetName returns the archive name published for the platform,
// e.g. "text-language-server-x86_64-unknown-linux-gnu.tar.gz".
func (p Platform) AssetName(binary string) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", binary, p.Arch, p.OS)
}

// String returns the platform triple, e.g. "aarch64-apple-darwin".
func (p Platform) String() string {
	return p.Arch + "-" + p.OS
}

// PlatformTag maps an os and architecture to the artifact naming fragments.
// Every combination without a published artifact fails with [ErrUnsupportedPlatform];
// the architecture is checked first.
func PlatformTag(os OS, arch Arch) (Platform, error) {
	var platform Platform

	switch arch {
	case Aarch64:
		platform.Arch = "aarch64"
	case X8664:
		platform.Arch = "x86_64"
	case X86:
		return Platform{}, fmt.Errorf("%w: x86 architecture is not supported", ErrUnsupportedPlatform)
	default:
		return Platform{}, fmt.Errorf("%w: %s architecture is not supported", ErrUnsupportedPlatform, arch)
	}

	switch os {
	case Mac:
		platform.OS = "apple-darwin"
	case Linux:
		platform.OS = "unknown-linux-gnu"
	case Windows:
		return Platform{}, fmt.Errorf("%w: Windows platform is not supported", ErrUnsupportedPlatform)
	default:
		return Platform{}, fmt.Errorf("%w: %s platform is not supported", ErrUnsupportedPlatform, os)
	}

	return platform, nil
}

// CurrentPlatform resolves the platform of the running process.
func CurrentPlatform() (Platform, error) {
	os, arch, err := hostFacts(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Platform{}, err
	}
	return PlatformTag(os, arch)
}

// hostFacts translates go's GOOS/GOARCH values into the closed OS and Arch sets.
func hostFacts(goos, goarch string) (OS, Arch, error) {
	var arch Arch
	switch goarch {
	case "arm64":
		arch = Aarch64
	case "amd64":
		arch = X8664
	case "386":
		arch = X86
	default:
		return 0, 0, fmt.Errorf("%w: %s architecture is not supported", ErrUnsupportedPlatform, goarch)
	}

	var os OS
	switch goos {
	case "darwin":
		os = Mac
	case "linux":
		os = Linux
	case "windows":
		os = Windows
	default:
		return 0, 0, fmt.Errorf("%w: %s platform is not supported", ErrUnsupportedPlatform, goos)
	}

	return os, arch, nil
}
