// Package platform classifies the machine dotforge is running on.
// Modules and contributions may restrict themselves to a subset of the
// closed platform set; everything else treats Platform as an opaque value.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Platform identifies a supported machine classification.
type Platform string

const (
	// MacOS covers Darwin hosts.
	MacOS Platform = "macos"
	// Ubuntu covers Ubuntu and Debian-derived hosts.
	Ubuntu Platform = "ubuntu"
	// AL2 covers Amazon Linux hosts.
	AL2 Platform = "al2"
	// Unknown is the fallback when detection cannot classify the host.
	Unknown Platform = "unknown"
)

const osReleasePath = "/etc/os-release"

// Valid reports whether p is a member of the closed platform set.
func (p Platform) Valid() bool {
	switch p {
	case MacOS, Ubuntu, AL2, Unknown:
		return true
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

// Parse converts a string into a Platform, rejecting values outside the closed set.
func Parse(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return Unknown, fmt.Errorf("unknown platform %q (expected one of macos, ubuntu, al2, unknown)", s)
	}
	return p, nil
}

// Detect classifies the current host. Linux distributions are identified
// via the ID field of /etc/os-release.
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return detectLinux(osReleasePath)
	}
	return Unknown
}

func detectLinux(releasePath string) Platform {
	data, err := os.ReadFile(releasePath)
	if err != nil {
		return Unknown
	}

	id := ""
	idLike := ""
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			id = strings.ToLower(value)
		case "ID_LIKE":
			idLike = strings.ToLower(value)
		}
	}

	switch {
	case id == "ubuntu" || strings.Contains(idLike, "ubuntu") || strings.Contains(idLike, "debian"):
		return Ubuntu
	case id == "amzn" || strings.Contains(idLike, "amzn"):
		return AL2
	}
	return Unknown
}
