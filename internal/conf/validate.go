// validate.go: configuration validation.
package conf

import (
	"errors"
	"fmt"
)

// validExportFormats are the supported series export encodings.
var validExportFormats = map[string]bool{
	"csv":  true,
	"json": true,
	"yaml": true,
}

// ValidateSettings checks the loaded configuration for contradictions
// before anything opens a database or allocates matrices.
func ValidateSettings(settings *Settings) error {
	var errs []error

	if settings.Range.EndYear < settings.Range.StartYear {
		errs = append(errs, fmt.Errorf("range: end year %d before start year %d",
			settings.Range.EndYear, settings.Range.StartYear))
	}

	if !settings.Output.SQLite.Enabled {
		errs = append(errs, errors.New("output: no record store enabled"))
	} else if settings.Output.SQLite.Path == "" {
		errs = append(errs, errors.New("output: sqlite enabled but no path set"))
	}

	if !validExportFormats[settings.Export.Format] {
		errs = append(errs, fmt.Errorf("export: unsupported format %q", settings.Export.Format))
	}

	return errors.Join(errs...)
}
