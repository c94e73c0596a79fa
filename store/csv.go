package store

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/safestreets-inc/routesafety-api/schema"
	"github.com/safestreets-inc/routesafety-api/score"
)

const datasetLogPrefix = "dataset"

// Column names of the NYC motor-vehicle-collisions export.
const (
	colLatitude    = "LATITUDE"
	colLongitude   = "LONGITUDE"
	colCrashDate   = "CRASH DATE"
	colCrashTime   = "CRASH TIME"
	colInjured     = "NUMBER OF PERSONS INJURED"
	colKilled      = "NUMBER OF PERSONS KILLED"
	colFactor      = "CONTRIBUTING FACTOR VEHICLE 1"
	colOnStreet    = "ON STREET NAME"
	colCrossStreet = "CROSS STREET NAME"
	colBorough     = "BOROUGH"
	colCollisionID = "COLLISION_ID"
)

const crashDateLayout = "01/02/2006"

// LoadCSVFile reads the collision export at path into validated accident
// records. Files named *.txt or *.tsv are read as tab separated, anything
// else as comma separated. A missing or unreadable file is an error the
// caller treats as fatal; individual malformed rows are skipped and
// counted, never failing the whole load.
func LoadCSVFile(path string, fatalityWeight float64) ([]schema.AccidentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	delimiter := ','
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".tsv":
		delimiter = '\t'
	}

	return ParseAccidents(f, delimiter, fatalityWeight)
}

// ParseAccidents parses one collision export stream. Rows without usable
// coordinates are dropped, casualty counts clamp at zero, and the derived
// fields (severity, hour, weekday, year-month) are computed once here so
// the request path never has to.
func ParseAccidents(r io.Reader, delimiter rune, fatalityWeight float64) ([]schema.AccidentRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := []schema.AccidentRecord{}
	skipped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		lat, latErr := strconv.ParseFloat(field(row, colLatitude), 64)
		lng, lngErr := strconv.ParseFloat(field(row, colLongitude), 64)
		if latErr != nil || lngErr != nil ||
			lat < -90 || lat > 90 || lng < -180 || lng > 180 ||
			(lat == 0 && lng == 0) {
			skipped++
			continue
		}

		injured := parseCount(field(row, colInjured))
		killed := parseCount(field(row, colKilled))

		id := field(row, colCollisionID)
		if id == "" {
			id = uuid.New().String()
		}

		record := schema.AccidentRecord{
			ID:          id,
			Location:    schema.Location{Latitude: lat, Longitude: lng},
			Date:        field(row, colCrashDate),
			Time:        field(row, colCrashTime),
			Injured:     injured,
			Killed:      killed,
			Factor:      field(row, colFactor),
			Borough:     field(row, colBorough),
			Street:      field(row, colOnStreet),
			CrossStreet: field(row, colCrossStreet),
			Severity:    score.SeverityV1(fatalityWeight, injured, killed),
		}
		deriveTemporal(&record)

		records = append(records, record)
	}

	log.WithFields(log.Fields{
		"prefix":  datasetLogPrefix,
		"records": len(records),
		"skipped": skipped,
	}).Info("parsed collision export")

	return records, nil
}

// parseCount reads a casualty count; absent or malformed values count as
// zero and negative values clamp to zero.
func parseCount(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

func deriveTemporal(r *schema.AccidentRecord) {
	r.Hour = schema.HourUnknown
	if i := strings.Index(r.Time, ":"); i > 0 {
		if hour, err := strconv.Atoi(strings.TrimSpace(r.Time[:i])); err == nil && hour >= 0 && hour <= 23 {
			r.Hour = hour
		}
	}

	if t, err := time.Parse(crashDateLayout, r.Date); err == nil {
		r.Weekday = t.Weekday().String()
		r.YearMonth = t.Format("2006-01")
	}
}
