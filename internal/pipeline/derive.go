package pipeline

import (
	"fmt"
	"math"
	"sort"

	"lightcurve-export/internal/model"
)

// ------------------- Derived Column Engine -------------------

const (
	// epochOffset converts the file family's truncated Julian date to
	// BJD_TDB.
	epochOffset = 2457000.0
	// magErrFactor is 2.5/ln(10), the first-order error propagation factor
	// from relative flux error to magnitude error.
	magErrFactor = 1.0857
)

// Derive appends the derived columns to a filtered table and returns the
// zero point used together with any non-fatal advisories.
//
// refMag is the externally supplied reference magnitude; nil means the file
// carried none, in which case the reference defaults to zero and a warning
// is emitted. The returned zero point is NaN when no finite instrumental
// magnitude exists.
func Derive(t *model.Table, refMag *float64) (float64, []string, error) {
	var warnings []string

	if timeCol, ok := t.Col(model.ColTime); ok {
		shifted := make([]float64, len(timeCol.Values))
		for i, v := range timeCol.Values {
			shifted[i] = v + epochOffset
		}
		if err := t.AddColumn(model.Column{Name: model.ColShiftedTime, Values: shifted}); err != nil {
			return math.NaN(), warnings, err
		}
	}

	fluxCol, ok := t.Col(model.ColFlux)
	if !ok {
		return math.NaN(), warnings, fmt.Errorf("%w: %s", ErrColumnMissing, model.ColFlux)
	}

	// Instrumental magnitudes are an intermediate: non-positive flux yields
	// non-finite values which stay in the table, excluded only from the
	// zero-point computation.
	instrumental := make([]float64, len(fluxCol.Values))
	for i, f := range fluxCol.Values {
		instrumental[i] = -2.5 * math.Log10(f)
	}

	ref := 0.0
	if refMag != nil {
		ref = *refMag
	} else {
		warnings = append(warnings,
			fmt.Sprintf("%s not found in global metadata, defaulting to a zero reference magnitude", model.MetaRefMag))
	}

	zeroPoint := math.NaN()
	calibrated := make([]float64, len(instrumental))
	if med, ok := medianFinite(instrumental); ok {
		zeroPoint = ref - med
		for i, m := range instrumental {
			calibrated[i] = m + zeroPoint
		}
	} else {
		warnings = append(warnings,
			fmt.Sprintf("no finite instrumental magnitudes, %s is NaN for every row", model.ColMag))
		for i := range calibrated {
			calibrated[i] = math.NaN()
		}
	}
	if err := t.AddColumn(model.Column{Name: model.ColMag, Values: calibrated}); err != nil {
		return zeroPoint, warnings, err
	}

	errCol, ok := t.Col(model.ColFluxErr)
	if !ok {
		warnings = append(warnings,
			fmt.Sprintf("%s not found, skipping %s", model.ColFluxErr, model.ColMagErr))
		return zeroPoint, warnings, nil
	}
	magErr := make([]float64, len(errCol.Values))
	for i, e := range errCol.Values {
		magErr[i] = magErrFactor * (e / fluxCol.Values[i])
	}
	if err := t.AddColumn(model.Column{Name: model.ColMagErr, Values: magErr}); err != nil {
		return zeroPoint, warnings, err
	}

	return zeroPoint, warnings, nil
}

// medianFinite computes the median of the finite subset of vals. ok is
// false when the subset is empty.
func medianFinite(vals []float64) (median float64, ok bool) {
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, false
	}
	sort.Float64s(finite)
	n := len(finite)
	if n%2 == 1 {
		return finite[n/2], true
	}
	return (finite[n/2-1] + finite[n/2]) / 2, true
}
