package build

import (
	"os"
	"time"
)

// mtimeOrEpoch returns the modification time of path, or the zero Time
// ("Epoch") if it does not exist.
func mtimeOrEpoch(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// isStale implements spec.md §4.7 step 2. headers is the (already
// filesystem-filtered) transitive header set for unitPath; a header equal
// to outPath is ignored, since a self-referential dependency entry carries
// no freshness information.
func isStale(unitPath, outPath string, headers []string) bool {
	outMtime := mtimeOrEpoch(outPath)
	if mtimeOrEpoch(unitPath).After(outMtime) {
		return true
	}
	for _, h := range headers {
		if h == outPath {
			continue
		}
		info, err := os.Stat(h)
		if err != nil {
			continue // nonexistent header: logged by the caller, skipped here
		}
		if info.ModTime().After(outMtime) {
			return true
		}
	}
	return false
}
