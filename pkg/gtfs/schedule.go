package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Schedule struct {
	Agencies      []Agency
	Stops         []Stop
	Routes        []Route
	Trips         []Trip
	Calendars     []Calendar
	CalendarDates []CalendarDate
}

func (gtfs *Schedule) ParseFile(reader io.Reader) error {
	// Allow us to ignore those naughty records that have missing columns, and
	// the byte order marks some exporters put in front of the header
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(transform.NewReader(in, unicode.BOMOverride(transform.Nop)))
		r.FieldsPerRecord = -1
		return r
	})

	fileMap := map[string]interface{}{
		"agency.txt":         &gtfs.Agencies,
		"stops.txt":          &gtfs.Stops,
		"routes.txt":         &gtfs.Routes,
		"trips.txt":          &gtfs.Trips,
		"calendar.txt":       &gtfs.Calendars,
		"calendar_dates.txt": &gtfs.CalendarDates,
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return err
	}

	for _, zipFile := range archive.File {
		fileName := zipFile.Name
		destination, exists := fileMap[fileName]
		if !exists {
			log.Debug().Str("file", fileName).Msg("Skipping gtfs file")
			continue
		}

		log.Info().Str("file", fileName).Msg("Loading file")

		if err := parseArchiveFile(zipFile, destination); err != nil {
			log.Error().Str("file", fileName).Err(err).Msg("Failed to parse csv file")
			return err
		}
	}

	return nil
}

func parseArchiveFile(zipFile *zip.File, destination interface{}) error {
	fileReader, err := zipFile.Open()
	if err != nil {
		return err
	}
	defer fileReader.Close()

	return gocsv.Unmarshal(fileReader, destination)
}
