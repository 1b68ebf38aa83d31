package pipeline

import (
	"strings"

	"gabraconv/internal/cleaner"
	"gabraconv/internal/export"
	"gabraconv/internal/faults"
)

// validateChain rejects chains that break cleaner prerequisites or lack a
// cleaner the exporter needs.
func validateChain(kindName string, chain []cleaner.Info, exporter export.Info) error {
	if err := cleaner.ValidateChain(chain); err != nil {
		return faults.Wrap(faults.ErrConfiguration, kindName, "cleaner chain", "", err)
	}
	if missing := export.MissingCleaners(exporter, cleaner.IDs(chain)); len(missing) > 0 {
		return faults.Wrap(faults.ErrConfiguration, kindName, "cleaner chain",
			"exporter "+exporter.ID+" requires cleaners: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

func appendSkipLog(files []string, skipLog string) []string {
	if skipLog == "" {
		return files
	}
	return append(files, skipLog)
}
