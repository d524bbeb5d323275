// Package compileinfoprint prints the build provenance to stderr when
// imported.
package compileinfoprint

import "github.com/Integrative-Transcriptomics/MUSIAL-sub002/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
