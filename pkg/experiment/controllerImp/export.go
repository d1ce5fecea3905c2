package controllerImp

import (
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"greenhouse/entities"
	"greenhouse/logger"
	"greenhouse/pkg/convert"
)

// Export column order. The header spelling is part of the download
// contract with the analysis frontend.
var exportHeaders = []string{
	"timestamp", "luftTemperatur", "luftfugtighed", "jordFugtighed",
	"lysIndstilling", "lysHøjesteIntensitet", "lysLavesteIntensitet", "lysGennemsnit",
	"afstandTilHøjde", "vandTidFraSidste", "vandMængde", "vandFrekvens",
}

func fnum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func measurementCells(m entities.Measurement) []string {
	return []string{
		m.Timestamp.Format(timestampLayout),
		fnum(m.AirTemperature), fnum(m.AirHumidity), fnum(m.SoilMoisture),
		m.LightMode, fnum(m.LightHighest), fnum(m.LightLowest), fnum(m.LightAverage),
		fnum(m.HeightDistance), fnum(m.WaterTimeSinceLast), fnum(m.WaterAmount), fnum(m.WaterFrequency),
	}
}

func measurementTable(measurements []entities.Measurement) *convert.Table {
	t := convert.NewTable(true)
	t.Headers = exportHeaders
	for _, m := range measurements {
		cells := measurementCells(m)
		row := make(map[string]string, len(exportHeaders))
		for i, h := range exportHeaders {
			row[h] = cells[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// exportFile emits the table through a temp file, which is removed on
// every exit path, and returns the rendered bytes.
func exportFile(t *convert.Table, format string, delimiter rune) ([]byte, error) {
	f, err := os.CreateTemp("", "experiment_*."+format)
	if err != nil {
		return nil, err
	}
	name := f.Name()
	defer os.Remove(name)

	switch format {
	case "json":
		err = t.WriteJSON(f)
	default:
		err = t.WriteCSV(f, delimiter)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

func (h *ExperimentCtrl) ExportXLSX(c echo.Context) error {
	id, measurements, err := h.loadMeasurements(c)
	if err != nil {
		return err
	}
	if len(measurements) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, header); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Error generating XLSX: "+err.Error())
		}
	}
	for r, m := range measurements {
		values := []interface{}{
			m.Timestamp.Format(timestampLayout),
			m.AirTemperature, m.AirHumidity, m.SoilMoisture,
			m.LightMode, m.LightHighest, m.LightLowest, m.LightAverage,
			m.HeightDistance, m.WaterTimeSinceLast, m.WaterAmount, m.WaterFrequency,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error generating XLSX: "+err.Error())
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		logger.Errorf("export xlsx: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error generating XLSX: "+err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		"attachment; filename=experiment_"+strconv.FormatUint(uint64(id), 10)+"_data.xlsx")
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
