package store

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safestreets-inc/routesafety-api/schema"
	"github.com/safestreets-inc/routesafety-api/score"
)

const testExportCSV = `CRASH DATE,CRASH TIME,BOROUGH,LATITUDE,LONGITUDE,NUMBER OF PERSONS INJURED,NUMBER OF PERSONS KILLED,CONTRIBUTING FACTOR VEHICLE 1,ON STREET NAME,CROSS STREET NAME,COLLISION_ID
09/21/2020,14:30,BROOKLYN,40.6501,-73.9496,2,0,Unsafe Speed,ATLANTIC AVENUE,BEDFORD AVENUE,4345678
09/22/2020,4:05,QUEENS,40.7282,-73.7949,0,1,Unspecified,,,4345679
09/23/2020,,MANHATTAN,40.7831,-73.9712,-3,0,Driver Inattention/Distraction,BROADWAY,,
09/24/2020,12:00,BRONX,,,1,0,Unsafe Speed,,,4345681
09/25/2020,23:15,STATEN ISLAND,91.0,-74.1,1,0,Unsafe Speed,,,4345682
`

func TestParseAccidents(t *testing.T) {
	records, err := ParseAccidents(strings.NewReader(testExportCSV), ',', score.DefaultFatalityWeight)
	assert.NoError(t, err)

	// rows without coordinates or with out-of-range coordinates are dropped
	assert.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "4345678", first.ID)
	assert.Equal(t, 40.6501, first.Location.Latitude)
	assert.Equal(t, -73.9496, first.Location.Longitude)
	assert.Equal(t, 2, first.Injured)
	assert.Equal(t, 0, first.Killed)
	assert.Equal(t, 2.0, first.Severity)
	assert.Equal(t, "Unsafe Speed", first.Factor)
	assert.Equal(t, "BROOKLYN", first.Borough)
	assert.Equal(t, "ATLANTIC AVENUE", first.Street)
	assert.Equal(t, "BEDFORD AVENUE", first.CrossStreet)
	assert.Equal(t, 14, first.Hour)
	assert.Equal(t, "Monday", first.Weekday)
	assert.Equal(t, "2020-09", first.YearMonth)

	second := records[1]
	assert.Equal(t, 1, second.Killed)
	assert.Equal(t, score.DefaultFatalityWeight, second.Severity)
	assert.Equal(t, 4, second.Hour)

	third := records[2]
	// negative casualty count clamps at ingestion
	assert.Equal(t, 0, third.Injured)
	assert.Equal(t, 0.0, third.Severity)
	// missing crash time maps to the unknown hour, not midnight
	assert.Equal(t, schema.HourUnknown, third.Hour)
	// missing collision id gets a generated one
	assert.NotEmpty(t, third.ID)
}

func TestParseAccidentsTabSeparated(t *testing.T) {
	tsv := strings.ReplaceAll(testExportCSV, ",", "\t")
	// the factor contains no commas in this fixture, so the swap is safe
	records, err := ParseAccidents(strings.NewReader(tsv), '\t', score.DefaultFatalityWeight)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadCSVFileDelimiterByExtension(t *testing.T) {
	dir, err := ioutil.TempDir("", "routesafety-test")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "export.txt")
	tsv := strings.ReplaceAll(testExportCSV, ",", "\t")
	assert.NoError(t, ioutil.WriteFile(path, []byte(tsv), 0644))

	records, err := LoadCSVFile(path, score.DefaultFatalityWeight)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadCSVFileMissing(t *testing.T) {
	_, err := LoadCSVFile("/nonexistent/accidents.csv", score.DefaultFatalityWeight)
	assert.Error(t, err)
}
