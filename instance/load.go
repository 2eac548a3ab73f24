package instance

import (
	"fmt"
	"path/filepath"
	"strings"

	"q.log/tableau/model"
)

// Input formats accepted by Load.
const (
	FormatAuto     = "auto"
	FormatTableau  = "tableau"
	FormatMPS      = "mps"
	FormatMPSFixed = "mps-fixed"
)

// MPSReader reads a linear program in MPS format. Fixed selects the fixed
// column layout instead of free MPS.
type MPSReader struct {
	filename string
	Fixed    bool
}

func NewMPSReader(filename string) *MPSReader {
	return &MPSReader{
		filename: filename,
	}
}

// ConstructTableauFromFile reads the MPS file and converts it to equality
// form.
func (r *MPSReader) ConstructTableauFromFile() (*model.Tableau, error) {
	p, err := r.ConstructProblemFromFile()
	if err != nil {
		return nil, err
	}
	return p.Tableau()
}

// Load reads filename in the given format. FormatAuto picks MPS for .mps
// files and the tableau text format otherwise.
func Load(filename, format string) (*model.Tableau, error) {
	if format == "" || format == FormatAuto {
		format = FormatTableau
		if strings.EqualFold(filepath.Ext(filename), ".mps") {
			format = FormatMPS
		}
	}

	switch format {
	case FormatTableau:
		return NewReader(filename).ConstructTableauFromFile()
	case FormatMPS, FormatMPSFixed:
		r := NewMPSReader(filename)
		r.Fixed = format == FormatMPSFixed
		return r.ConstructTableauFromFile()
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
