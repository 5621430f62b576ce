package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// ValuePoint is one observation of the total portfolio value.
type ValuePoint struct {
	Date  Date
	Value float64
}

// ValueSeries is the derived daily series of total portfolio values, the
// input of the metrics layer. Points are kept sorted by date with at most one
// point per day; appending to an existing day replaces it.
type ValueSeries struct {
	points []ValuePoint
}

// Append records the portfolio value for a day, replacing any existing point
// on the same day.
func (s *ValueSeries) Append(on Date, value float64) {
	for i, pt := range s.points {
		if pt.Date == on {
			s.points[i].Value = value
			return
		}
	}
	s.points = append(s.points, ValuePoint{Date: on, Value: value})
	sort.SliceStable(s.points, func(i, j int) bool {
		return s.points[i].Date.Before(s.points[j].Date)
	})
}

func (s *ValueSeries) Len() int { return len(s.points) }

// Points returns a copy of the series points in date order.
func (s *ValueSeries) Points() []ValuePoint {
	out := make([]ValuePoint, len(s.points))
	copy(out, s.points)
	return out
}

// Values returns the portfolio values in date order.
func (s *ValueSeries) Values() []float64 {
	values := make([]float64, len(s.points))
	for i, pt := range s.points {
		values[i] = pt.Value
	}
	return values
}

// DaysElapsed is the number of days between the first and last observation.
func (s *ValueSeries) DaysElapsed() int {
	if len(s.points) < 2 {
		return 0
	}
	return s.points[len(s.points)-1].Date.DaysSince(s.points[0].Date)
}

// returnsByDate computes the daily percent change of the series, each return
// keyed by the date of its second observation. The first point has no return.
func (s *ValueSeries) returnsByDate() ([]Date, []float64) {
	if len(s.points) < 2 {
		return nil, nil
	}
	dates := make([]Date, 0, len(s.points)-1)
	returns := make([]float64, 0, len(s.points)-1)
	for i := 1; i < len(s.points); i++ {
		prev := s.points[i-1].Value
		if prev == 0 {
			continue
		}
		dates = append(dates, s.points[i].Date)
		returns = append(returns, (s.points[i].Value-prev)/prev)
	}
	return dates, returns
}

// AlignReturns computes the daily returns of both series restricted to the
// dates present in each. Benchmark-relative statistics (beta, tracking
// error, information ratio) must only see this date-aligned intersection.
func (s *ValueSeries) AlignReturns(benchmark *ValueSeries) (rp, rb []float64) {
	pDates, pReturns := s.returnsByDate()
	bDates, bReturns := benchmark.returnsByDate()

	byDate := make(map[Date]float64, len(bDates))
	for i, d := range bDates {
		byDate[d] = bReturns[i]
	}
	for i, d := range pDates {
		if r, ok := byDate[d]; ok {
			rp = append(rp, pReturns[i])
			rb = append(rb, r)
		}
	}
	return rp, rb
}

// DecodeValueSeries reads a CSV value series with a "date,portfolio_value"
// header.
func DecodeValueSeries(r io.Reader) (*ValueSeries, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read value series: %w", err)
	}
	s := &ValueSeries{}
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("value series line %d: want 2 columns, got %d", i+1, len(record))
		}
		on, err := ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("value series line %d: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("value series line %d: invalid value %q: %w", i+1, record[1], err)
		}
		s.Append(on, value)
	}
	return s, nil
}

// EncodeValueSeries writes the series as CSV with a header line.
func EncodeValueSeries(w io.Writer, s *ValueSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "portfolio_value"}); err != nil {
		return err
	}
	for _, pt := range s.points {
		if err := cw.Write([]string{pt.Date.String(), strconv.FormatFloat(pt.Value, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadValueSeries reads a value series file; a missing file is an empty
// series.
func LoadValueSeries(path string) (*ValueSeries, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return &ValueSeries{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open value series %q: %w", path, err)
	}
	defer file.Close()
	return DecodeValueSeries(file)
}

// SaveValueSeries writes a value series file.
func SaveValueSeries(path string, s *ValueSeries) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create value series %q: %w", path, err)
	}
	defer file.Close()
	return EncodeValueSeries(file, s)
}
