package iaga2002

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatError reports a parse or serialization failure, identifying the
// offending address when one is known.
type FormatError struct {
	URL string
	Err error
}

func (e *FormatError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("iaga2002 format: %v", e.Err)
	}
	return fmt.Sprintf("iaga2002 format: %s: %v", e.URL, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Header record labels defined by the IAGA 2002 standard.
const (
	headerFormat       = "Format"
	headerSource       = "Source of Data"
	headerStationName  = "Station Name"
	headerIAGACode     = "IAGA CODE"
	headerLatitude     = "Geodetic Latitude"
	headerLongitude    = "Geodetic Longitude"
	headerElevation    = "Elevation"
	headerReported     = "Reported"
	headerOrientation  = "Sensor Orientation"
	headerSampling     = "Digital Sampling"
	headerIntervalType = "Data Interval Type"
	headerDataType     = "Data Type"
)

// Missing-value sentinels: 99999 marks a missing sample, 88888 a sample
// that was deliberately not observed. Both become NaN in memory.
const (
	missingValue     = 99999.0
	notObservedValue = 88888.0
)

// dayFile is the raw parsed form of one IAGA 2002 file: header records,
// ordered sample instants, and one column of values per reported channel.
type dayFile struct {
	headers  map[string]string
	comments []string
	channels []string
	times    []time.Time
	data     map[string][]float64
}

// parseFile parses raw IAGA 2002 content. Header records are lines ending
// in "|" with a 24-column label field; comment lines start with " #"; the
// column header line starts with "DATE"; every following non-empty line is
// a data row with one timestamp and one value per channel.
func parseFile(raw []byte) (*dayFile, error) {
	f := &dayFile{
		headers: make(map[string]string),
		data:    make(map[string][]float64),
	}

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	inData := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case inData:
			if err := f.parseDataLine(line, lineNo); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, " #"):
			f.comments = append(f.comments, strings.TrimSpace(strings.TrimSuffix(line[2:], "|")))
		case strings.HasPrefix(line, "DATE"):
			if err := f.parseColumnHeader(line, lineNo); err != nil {
				return nil, err
			}
			inData = true
		case strings.HasSuffix(line, "|"):
			f.parseHeaderLine(line)
		default:
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	if len(f.channels) == 0 {
		return nil, fmt.Errorf("no column header found")
	}
	if len(f.times) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}
	return f, nil
}

// parseHeaderLine splits a header record into its label (columns 2-24) and
// value (columns 25-69) fields.
func (f *dayFile) parseHeaderLine(line string) {
	line = strings.TrimSuffix(line, "|")
	if len(line) < 2 {
		return
	}
	body := line[1:]
	if len(body) <= 23 {
		f.headers[strings.TrimSpace(body)] = ""
		return
	}
	key := strings.TrimSpace(body[:23])
	value := strings.TrimSpace(body[23:])
	f.headers[key] = value
}

// parseColumnHeader extracts channel codes from the DATE/TIME/DOY header.
// Column labels prepend the station code to the channel code (BOUH -> H).
func (f *dayFile) parseColumnHeader(line string, lineNo int) error {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), "|"))
	if len(fields) < 4 || fields[0] != "DATE" || fields[1] != "TIME" || fields[2] != "DOY" {
		return fmt.Errorf("line %d: malformed column header %q", lineNo, line)
	}

	station := f.headers[headerIAGACode]
	for _, label := range fields[3:] {
		var channel string
		switch {
		case station != "" && strings.HasPrefix(label, station) && len(label) > len(station):
			channel = label[len(station):]
		case len(label) > 3:
			channel = label[3:]
		default:
			channel = label
		}
		f.channels = append(f.channels, channel)
	}
	return nil
}

func (f *dayFile) parseDataLine(line string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) != 3+len(f.channels) {
		return fmt.Errorf("line %d: expected %d columns, found %d",
			lineNo, 3+len(f.channels), len(fields))
	}

	instant, err := time.ParseInLocation("2006-01-02 15:04:05", fields[0]+" "+fields[1], time.UTC)
	if err != nil {
		return fmt.Errorf("line %d: bad timestamp: %w", lineNo, err)
	}
	f.times = append(f.times, instant)

	for i, channel := range f.channels {
		v, err := strconv.ParseFloat(fields[3+i], 64)
		if err != nil {
			return fmt.Errorf("line %d: bad value %q for channel %s: %w",
				lineNo, fields[3+i], channel, err)
		}
		if v == missingValue || v == notObservedValue {
			v = math.NaN()
		}
		f.data[channel] = append(f.data[channel], v)
	}
	return nil
}

// headerFloat parses a numeric header record. An absent header is zero, but
// a present, unparsable value is an error rather than a fabricated
// coordinate.
func (f *dayFile) headerFloat(key string) (float64, error) {
	s := strings.TrimSpace(f.headers[key])
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("header %s: bad numeric value %q", key, s)
	}
	return v, nil
}
