package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/xlsxio"
	"go.uber.org/zap"
)

var errJSONMerge = errors.New("json plan files replace the plan and cannot be merged")

type planFormat int

const (
	formatXLSX planFormat = iota + 1
	formatJSON
)

func formatOf(path string) (planFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return formatXLSX, nil
	case ".json":
		return formatJSON, nil
	}
	return 0, fmt.Errorf("unsupported plan file %q: use .xlsx or .json", path)
}

// loadPlan reads a plan file into plan, picking the format by extension.
// With replace false the file is merged in, which only workbooks support.
func loadPlan(path string, plan *seatplan.Plan, replace bool, log *zap.Logger) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		if !replace {
			return fmt.Errorf("%s: %w", path, errJSONMerge)
		}
		return plan.LoadJSON(path)
	default:
		return xlsxio.Load(path, plan, xlsxio.LoadOptions{Clear: replace, Logger: log})
	}
}

// savePlan writes plan to path in the format named by its extension.
func savePlan(plan *seatplan.Plan, path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}
	if format == formatJSON {
		return plan.SaveJSON(path)
	}
	return xlsxio.Save(plan, path)
}
