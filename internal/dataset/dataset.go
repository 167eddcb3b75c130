// Package dataset loads the parallel input and target record streams of the
// train, dev, and test splits.
package dataset

import (
	"fmt"

	"ovrprep/internal/config"
	"ovrprep/internal/fileutil"
	"ovrprep/internal/services"
)

// Split holds one split's records. Inputs[i] is labelled by Targets[i].
type Split struct {
	Name       string
	InputFile  string
	TargetFile string
	Inputs     []string
	Targets    []string
}

// Aligned reports whether the input and target streams have equal length.
func (s *Split) Aligned() bool { return len(s.Inputs) == len(s.Targets) }

// Dataset is the loaded train, dev, and test splits in that order.
type Dataset struct {
	Folder string
	Splits []*Split
}

// Load reads every split's input and target files from folder.
func Load(folder string, files []config.SplitFiles, opts fileutil.ReadOptions) (*Dataset, error) {
	ds := &Dataset{Folder: folder, Splits: make([]*Split, 0, len(files))}
	for _, f := range files {
		inputs, err := fileutil.ReadLines(fileutil.JoinUnder(folder, f.Input), opts)
		if err != nil {
			return nil, fmt.Errorf("%s input: %w", f.Name, err)
		}
		targets, err := fileutil.ReadLines(fileutil.JoinUnder(folder, f.Target), opts)
		if err != nil {
			return nil, fmt.Errorf("%s target: %w", f.Name, err)
		}
		ds.Splits = append(ds.Splits, &Split{
			Name:       f.Name,
			InputFile:  f.Input,
			TargetFile: f.Target,
			Inputs:     inputs,
			Targets:    targets,
		})
	}
	return ds, nil
}

// Split returns the named split, or nil.
func (d *Dataset) Split(name string) *Split {
	for _, s := range d.Splits {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// CheckShape reports the first split whose input and target counts differ.
func (d *Dataset) CheckShape() error {
	for _, s := range d.Splits {
		if !s.Aligned() {
			return services.Wrap(services.ErrShapeMismatch, "load", s.Name,
				fmt.Sprintf("%d input records but %d target records", len(s.Inputs), len(s.Targets)), nil)
		}
	}
	return nil
}
