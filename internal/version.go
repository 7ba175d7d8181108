package internal

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Set with buildflag if built in pipeline and not using go install
var (
	BuildVersion  = ""
	BuildChecksum = ""
)

func printVersion(w io.Writer) error {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	version := bi.Main.Version
	if BuildVersion != "" {
		version = BuildVersion
	}
	checksum := bi.Main.Sum
	if BuildChecksum != "" {
		checksum = BuildChecksum
	}
	fmt.Fprintf(w, "version: %v, go version: %v, checksum: %v\n", version, bi.GoVersion, checksum)
	return nil
}
