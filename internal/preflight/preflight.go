package preflight

import (
	"fmt"
	"os"
	"strings"

	"ovrprep/internal/config"
	"ovrprep/internal/fileutil"
	"ovrprep/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Access Access `json:"-"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the path checks for a run. A dry run writes nothing, so the
// data folder and output directory only need read access.
func RunAll(cfg *config.Config, dryRun bool) []Result {
	if cfg == nil {
		return nil
	}

	writeMode := ReadWrite
	if dryRun {
		writeMode = Read
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Data folder", cfg.Data.Folder, writeMode))
	for _, split := range cfg.SplitFiles() {
		results = append(results,
			CheckFileReadable(split.Name+" input", fileutil.JoinUnder(cfg.Data.Folder, split.Input)),
			CheckFileReadable(split.Name+" target", fileutil.JoinUnder(cfg.Data.Folder, split.Target)),
		)
	}

	if !dryRun || dirExists(cfg.OVR.OutputDir) {
		results = append(results, CheckDirectoryAccess("OVR output directory", cfg.OVR.OutputDir, writeMode))
	}
	return results
}

// EnsureOutputDir creates the OVR output directory when configured to.
func EnsureOutputDir(cfg *config.Config) error {
	if cfg == nil || !cfg.OVR.CreateOutputDir || strings.TrimSpace(cfg.OVR.OutputDir) == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.OVR.OutputDir, 0o755); err != nil {
		return services.Wrap(services.ErrWrite, "preflight", "create output dir", cfg.OVR.OutputDir, err)
	}
	return nil
}

// Err folds failed results into a single error. A failed read-only check is
// a read error; when only write checks fail it is a write error.
func Err(results []Result) error {
	var failed []string
	marker := services.ErrWrite
	for _, r := range results {
		if r.Passed {
			continue
		}
		failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		if r.Access != ReadWrite {
			marker = services.ErrRead
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(marker, "preflight", "check paths", strings.Join(failed, "; "), nil)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
