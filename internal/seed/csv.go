package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"philcali.me/cookbook/internal/data"
)

var _header = []string{"id", "name", "measurement_unit"}

// ParseIngredients reads catalog rows from a CSV source with an
// id,name,measurement_unit header. Blank fields fail the whole parse:
// a partial catalog import is worse than none.
func ParseIngredients(reader io.Reader) ([]data.IngredientSeedDTO, error) {
	records := csv.NewReader(reader)
	records.FieldsPerRecord = len(_header)
	header, err := records.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read the header: %w", err)
	}
	for i, name := range _header {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("expected header column %d to be %s, got %s", i, name, header[i])
		}
	}
	var rows []data.IngredientSeedDTO
	for {
		record, err := records.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := data.IngredientSeedDTO{
			Id:              strings.TrimSpace(record[0]),
			Name:            strings.TrimSpace(record[1]),
			MeasurementUnit: strings.TrimSpace(record[2]),
		}
		if row.Id == "" || row.Name == "" || row.MeasurementUnit == "" {
			line, _ := records.FieldPos(0)
			return nil, fmt.Errorf("line %d is missing a required field", line)
		}
		rows = append(rows, row)
	}
}
