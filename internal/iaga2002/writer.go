package iaga2002

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/geomag-data-etl/internal/domain"
)

// writeTimeseries serializes the selected channels of ts in IAGA 2002
// layout: twelve header records, a column header, and one fixed-width row
// per sample instant. All selected traces must share start time, rate, and
// length. Declination is converted back to arc-minutes on the way out.
func writeTimeseries(w io.Writer, ts domain.Timeseries, channels []string) error {
	if len(channels) == 0 {
		return fmt.Errorf("no channels selected")
	}

	traces := make([]*domain.Trace, len(channels))
	for i, channel := range channels {
		tr := ts.Select(channel)
		if tr == nil {
			return fmt.Errorf("channel %s not present in timeseries", channel)
		}
		traces[i] = tr
	}

	stats := traces[0].Stats
	for _, tr := range traces[1:] {
		if !tr.Stats.StartTime.Equal(stats.StartTime) || tr.Stats.Delta() != stats.Delta() ||
			len(tr.Data) != len(traces[0].Data) {
			return fmt.Errorf("channel %s is not aligned with channel %s", tr.Stats.Channel, stats.Channel)
		}
	}

	columns := make([][]float64, len(traces))
	for i, tr := range traces {
		if tr.Stats.Channel == domain.DeclinationChannel {
			columns[i] = domain.MinutesFromRadians(tr.Data)
		} else {
			columns[i] = tr.Data
		}
	}

	bw := bufio.NewWriter(w)
	writeHeaders(bw, stats, channels)
	writeColumnHeader(bw, stats.Station, channels)

	delta := stats.Delta()
	for row := 0; row < len(traces[0].Data); row++ {
		instant := stats.StartTime.Add(time.Duration(row) * delta)
		fmt.Fprintf(bw, "%s %s %03d", instant.Format("2006-01-02"),
			instant.Format("15:04:05.000"), instant.YearDay())
		for _, col := range columns {
			bw.WriteString(formatValue(col[row]))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

func writeHeaders(bw *bufio.Writer, stats domain.Stats, channels []string) {
	reported := ""
	for _, channel := range channels {
		reported += channel
	}

	writeHeaderLine(bw, headerFormat, "IAGA-2002")
	writeHeaderLine(bw, headerSource, "")
	writeHeaderLine(bw, headerStationName, stats.StationName)
	writeHeaderLine(bw, headerIAGACode, stats.Station)
	writeHeaderLine(bw, headerLatitude, strconv.FormatFloat(stats.Latitude, 'f', 3, 64))
	writeHeaderLine(bw, headerLongitude, strconv.FormatFloat(stats.Longitude, 'f', 3, 64))
	writeHeaderLine(bw, headerElevation, strconv.FormatFloat(stats.Elevation, 'f', 0, 64))
	writeHeaderLine(bw, headerReported, reported)
	writeHeaderLine(bw, headerOrientation, reported)
	writeHeaderLine(bw, headerSampling, samplingDescription(stats.Delta()))
	writeHeaderLine(bw, headerIntervalType, intervalDescription(stats.Delta()))
	writeHeaderLine(bw, headerDataType, stats.DataType)
}

// writeHeaderLine emits one 70-column header record:
// a space, a 23-column label, a 45-column value, and a closing "|".
func writeHeaderLine(bw *bufio.Writer, key, value string) {
	fmt.Fprintf(bw, " %-23s%-45s|\n", key, value)
}

func writeColumnHeader(bw *bufio.Writer, station string, channels []string) {
	line := fmt.Sprintf("%-10s %-12s %-3s", "DATE", "TIME", "DOY")
	for _, channel := range channels {
		line += fmt.Sprintf("%10s", station+channel)
	}
	for len(line) < 69 {
		line += " "
	}
	bw.WriteString(line + "|\n")
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		v = missingValue
	}
	return fmt.Sprintf("%10.2f", v)
}

func samplingDescription(delta time.Duration) string {
	if delta <= 0 {
		return ""
	}
	return fmt.Sprintf("%g second", delta.Seconds())
}

func intervalDescription(delta time.Duration) string {
	switch delta {
	case time.Minute:
		return "1-minute"
	case time.Second:
		return "1-second"
	case time.Hour:
		return "1-hour"
	default:
		return ""
	}
}
