package trkntuple

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on round values
// and fills the gaps with unlabelled minor ticks.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks < 2 {
		t.NSuggestedTicks = 4
	}
	if max <= min {
		// degenerate axis, e.g. a histogram with a single filled value
		return []plot.Tick{{Value: min, Label: formatFloatTick(min, -1)}}
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	majorMult := int(n / float64(t.NSuggestedTicks-1))
	switch majorMult {
	case 7:
		majorMult = 6
	case 9:
		majorMult = 8
	}
	majorDelta := float64(majorMult) * tens

	var labels []float64
	for val := math.Floor(min/majorDelta) * majorDelta; val <= max; val += majorDelta {
		if val >= min {
			labels = append(labels, val)
		}
	}
	top := math.Max(math.Abs(min), math.Abs(max))
	prec := int(math.Ceil(math.Log10(top)) - math.Floor(math.Log10(majorDelta)))

	ticks := make([]plot.Tick, 0, 2*len(labels))
	major := make(map[float64]bool, len(labels))
	for _, v := range labels {
		v = round(v, prec)
		major[v] = true
		ticks = append(ticks, plot.Tick{Value: v, Label: formatFloatTick(v, -1)})
	}

	minorDelta := majorDelta / 2
	switch majorMult {
	case 3, 6:
		minorDelta = majorDelta / 3
	case 5:
		minorDelta = majorDelta / 5
	}
	for val := math.Floor(min/minorDelta) * minorDelta; val <= max; val += minorDelta {
		if val >= min && !major[round(val, prec)] {
			ticks = append(ticks, plot.Tick{Value: val})
		}
	}
	return ticks
}

// AngleTicks labels multiples of pi/4 for polar and azimuthal angle axes.
type AngleTicks struct{}

var angleLabels = map[int]string{
	-4: "-π", -3: "-3π/4", -2: "-π/2", -1: "-π/4",
	0: "0", 1: "π/4", 2: "π/2", 3: "3π/4", 4: "π",
}

func (AngleTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	step := math.Pi / 4
	for i := int(math.Ceil(min / step)); float64(i)*step <= max; i++ {
		ticks = append(ticks, plot.Tick{Value: float64(i) * step, Label: angleLabels[i]})
	}
	return ticks
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// avoid returning negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}
	if x == 0 {
		return 0
	}
	return x / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
